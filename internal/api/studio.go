package api

import "context"

// Info returns the studio profile of the authenticated account.
func (s StudioService) Info(ctx context.Context) (Result, error) {
	return call(ctx, s, "sp.studio.info")
}

// SetSetting stores a studio-level key/value setting.
func (s StudioService) SetSetting(ctx context.Context, key, value string) (Result, error) {
	return call(ctx, s, "sp.studio.set_setting",
		field{"setting_key", key},
		field{"setting_value", value},
	)
}

// GetSetting reads a studio-level setting.
func (s StudioService) GetSetting(ctx context.Context, key string) (Result, error) {
	return call(ctx, s, "sp.studio.get_setting", field{"setting_key", key})
}
