package cmd

import (
	"context"
	"strings"
	"testing"
)

func TestContactsCreateFromFields(t *testing.T) {
	mock := newAPIMock().On("sp.contact.create", 200, `{"stat":"ok","contact":{"id":31}}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{
			"contacts", "create",
			"--field", "first_name=Ann",
			"-f", "last_name=Lee",
			"-f", "address.city=Austin",
			"-f", "address.zip_postal=78701",
		})
		if err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, `Created contact "Ann Lee" (ID 31)`)
	form := mock.last(t).Form
	want := map[string]string{
		"first_name":          "Ann",
		"last_name":           "Lee",
		"address[city]":       "Austin",
		"address[zip_postal]": "78701",
	}
	for k, v := range want {
		if got := form.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestContactsCreateFromStdin(t *testing.T) {
	mock := newAPIMock().On("sp.contact.create", 200, `{"contact":{"id":32}}`)
	setupTestEnv(t, mock)
	withStdin(t, `{"email":"ann@example.com","tags":"vip,2024","address":{"country":"US"}}`)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"contacts", "create"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, `Created contact "ann@example.com" (ID 32)`)
	form := mock.last(t).Form
	if form.Get("email") != "ann@example.com" || form.Get("tags") != "vip,2024" || form.Get("address[country]") != "US" {
		t.Errorf("unexpected form: %v", form)
	}
}

func TestContactsCreateInvalidStdin(t *testing.T) {
	mock := newAPIMock()
	setupTestEnv(t, mock)
	withStdin(t, `{"email":`)

	var err error
	_ = captureStderr(t, func() {
		err = Execute(context.Background(), []string{"contacts", "create"})
	})
	if err == nil || !strings.Contains(err.Error(), "invalid JSON input") {
		t.Fatalf("expected JSON error, got %v", err)
	}
	if len(mock.Calls()) != 0 {
		t.Error("expected no request")
	}
}

func TestContactsCreateInvalidField(t *testing.T) {
	mock := newAPIMock()
	setupTestEnv(t, mock)

	var err error
	_ = captureStderr(t, func() {
		err = Execute(context.Background(), []string{"contacts", "create", "--field", "first_name"})
	})
	if err == nil || !strings.Contains(err.Error(), "invalid --field") {
		t.Fatalf("expected field error, got %v", err)
	}
	if code := ExitCode(err); code != exitUsage {
		t.Errorf("ExitCode = %d, want %d", code, exitUsage)
	}
}

func TestContactsCreateRejectsBadEmail(t *testing.T) {
	mock := newAPIMock()
	setupTestEnv(t, mock)

	var err error
	_ = captureStderr(t, func() {
		err = Execute(context.Background(), []string{"contacts", "create", "-f", "email=not-an-address"})
	})
	if err == nil || !strings.Contains(err.Error(), "invalid email") {
		t.Fatalf("expected email error, got %v", err)
	}
	if code := ExitCode(err); code != exitUsage {
		t.Errorf("ExitCode = %d, want %d", code, exitUsage)
	}
	if len(mock.Calls()) != 0 {
		t.Error("expected no request")
	}
}

func TestContactsUpdateUsesCreateMethod(t *testing.T) {
	mock := newAPIMock().On("sp.contact.create", 200, `{"stat":"ok"}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"contacts", "update", "31", "-f", "phone=555-0100"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "Updated contact 31")
	call := mock.last(t)
	if call.Method != "sp.contact.create" {
		t.Errorf("method = %q", call.Method)
	}
	if call.Form.Get("contact_id") != "31" || call.Form.Get("phone") != "555-0100" {
		t.Errorf("unexpected form: %v", call.Form)
	}
}

func TestContactsUpdateClearsAddressFromStdin(t *testing.T) {
	mock := newAPIMock().On("sp.contact.create", 200, `{"stat":"ok"}`)
	setupTestEnv(t, mock)
	withStdin(t, `{"address":null,"method":"sp.contact.delete"}`)

	_ = captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"contacts", "update", "31"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	call := mock.last(t)
	if call.Method != "sp.contact.create" {
		t.Errorf("method = %q, want sp.contact.create", call.Method)
	}
	if got := call.Form["address"]; len(got) != 1 || got[0] != "null" {
		t.Errorf("address = %v, want [null]", got)
	}
	if call.Form.Get("contact_id") != "31" {
		t.Errorf("unexpected form: %v", call.Form)
	}
}

func TestContactsBulkCreate(t *testing.T) {
	mock := newAPIMock().On("sp.contact.bulk_create", 200, `{"stat":"ok"}`)
	setupTestEnv(t, mock)
	withStdin(t, `[{"first_name":"Ann","address":{"city":"Austin"}},{"first_name":"Bo"}]`)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"contacts", "bulk-create"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "Created 2 contacts")
	form := mock.last(t).Form
	if form.Get("contacts[0][first_name]") != "Ann" ||
		form.Get("contacts[0][address][city]") != "Austin" ||
		form.Get("contacts[1][first_name]") != "Bo" {
		t.Errorf("unexpected form: %v", form)
	}
}

func TestContactsBulkCreateEmpty(t *testing.T) {
	mock := newAPIMock()
	setupTestEnv(t, mock)
	withStdin(t, `[]`)

	var err error
	_ = captureStderr(t, func() {
		err = Execute(context.Background(), []string{"contacts", "bulk-create"})
	})
	if err == nil || !strings.Contains(err.Error(), "contacts is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if code := ExitCode(err); code != exitUsage {
		t.Errorf("ExitCode = %d, want %d", code, exitUsage)
	}
	if len(mock.Calls()) != 0 {
		t.Error("expected no request")
	}
}

func TestContactsBulkCreateDryRun(t *testing.T) {
	mock := newAPIMock()
	setupTestEnv(t, mock)
	withStdin(t, `[{"email":"a@example.com"}]`)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"contacts", "bulk-create", "--dry-run"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "Would call sp.contact.bulk_create", "contacts[0][email]: a@example.com")
	if len(mock.Calls()) != 0 {
		t.Error("expected no request")
	}
}

func TestContactsGetAndDelete(t *testing.T) {
	mock := newAPIMock().
		On("sp.contact.info", 200, `{"contact":{"id":31,"first_name":"Ann","address":{"city":"Austin"}}}`).
		On("sp.contact.delete", 200, `{"stat":"ok"}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"contacts", "get", "31"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
		if err := Execute(context.Background(), []string{"contacts", "delete", "31"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "contact.first_name:", "Ann", "contact.address.city:", "Deleted contact 31")
	if got := strings.Join(mock.Methods(), ","); got != "sp.contact.info,sp.contact.delete" {
		t.Errorf("unexpected calls: %s", got)
	}
	for _, c := range mock.Calls() {
		if c.Form.Get("contact_id") != "31" {
			t.Errorf("%s contact_id = %q", c.Method, c.Form.Get("contact_id"))
		}
	}
}

func TestStudioCommands(t *testing.T) {
	mock := newAPIMock().
		On("sp.studio.info", 200, `{"studio":{"name":"Acme Photo","id":1}}`).
		On("sp.studio.get_setting", 200, `{"setting_value":"1"}`).
		On("sp.studio.set_setting", 200, `{"stat":"ok"}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		for _, args := range [][]string{
			{"studio", "info"},
			{"studio", "setting", "get", "watermark_enabled"},
			{"studio", "setting", "set", "watermark_enabled", "0"},
		} {
			if err := Execute(context.Background(), args); err != nil {
				t.Fatalf("%v failed: %v", args, err)
			}
		}
	})

	assertContains(t, output, "studio.name:", "Acme Photo", "setting_value:", "Updated setting watermark_enabled")
	calls := mock.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %v", mock.Methods())
	}
	if calls[1].Form.Get("setting_key") != "watermark_enabled" {
		t.Errorf("get setting_key = %q", calls[1].Form.Get("setting_key"))
	}
	if calls[2].Form.Get("setting_key") != "watermark_enabled" || calls[2].Form.Get("setting_value") != "0" {
		t.Errorf("unexpected set form: %v", calls[2].Form)
	}
}

func TestOrdersCommands(t *testing.T) {
	mock := newAPIMock().
		On("sp.order.get_list", 200, `{"orders":[{"id":700,"status":"paid","total":42.5,"date":"2024-08-01"}]}`).
		On("sp.order.get_details", 200, `{"order":{"id":700,"status":"paid"}}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"orders", "list", "--page", "2"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
		if err := Execute(context.Background(), []string{"orders", "get", "700"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "STATUS", "42.5", "order.status:", "paid")
	calls := mock.Calls()
	if calls[0].Form.Get("page") != "2" {
		t.Errorf("page = %q", calls[0].Form.Get("page"))
	}
	if calls[1].Form.Get("order_id") != "700" {
		t.Errorf("order_id = %q", calls[1].Form.Get("order_id"))
	}
}

func TestBrandsGetByName(t *testing.T) {
	mock := newAPIMock().
		On("sp.brand.get_list", 200, `{"brands":[{"id":3,"name":"Main Street Photo"},{"id":4,"name":"Riverside"}]}`).
		On("sp.brand.info", 200, `{"brand":{"id":4,"name":"Riverside"}}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"brands", "get", "riverside"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "brand.name:", "Riverside")
	if got := mock.last(t).Form.Get("brand_id"); got != "4" {
		t.Errorf("brand_id = %q, want 4", got)
	}
}

func TestBrandsList(t *testing.T) {
	mock := newAPIMock().On("sp.brand.get_list", 200, `{"brands":[{"id":3,"name":"Main Street Photo"}]}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"brands", "list"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})
	assertContains(t, output, "ID", "NAME", "Main Street Photo")
}

func TestMobileAppsCommands(t *testing.T) {
	mock := newAPIMock().
		On("sp.mobile_app.get_list", 200, `{"mobile_apps":[{"id":8,"name":"Smith App","brand_id":3}]}`).
		On("sp.mobile_app.get_photos", 200, `{"photos":[{"id":1,"name":"cover.jpg"}]}`)
	setupTestEnv(t, mock)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"mobile-apps", "list", "--brand", "3"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
		if err := Execute(context.Background(), []string{"mobile-apps", "photos", "8"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	assertContains(t, output, "Smith App", "cover.jpg")
	calls := mock.Calls()
	if calls[0].Form.Get("brand_id") != "3" || calls[0].Form.Get("page") != "1" {
		t.Errorf("unexpected list form: %v", calls[0].Form)
	}
	if calls[1].Form.Get("mobile_app_id") != "8" {
		t.Errorf("mobile_app_id = %q", calls[1].Form.Get("mobile_app_id"))
	}
}
