package api

import "sync"

// TokenStore holds the OAuth tokens of one session.
//
// It only keeps the current values in memory: there is no expiry tracking, no
// validation and no persistence. Concurrent writers resolve last-write-wins.
type TokenStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// SetAccessToken replaces the access token sent with every API call.
func (s *TokenStore) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// AccessToken returns the current access token, empty when unset.
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetRefreshToken replaces the refresh token.
func (s *TokenStore) SetRefreshToken(token string) {
	s.mu.Lock()
	s.refreshToken = token
	s.mu.Unlock()
}

// RefreshToken returns the current refresh token, empty when unset.
func (s *TokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

func (s *TokenStore) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.mu.Unlock()
}
