package auth

import "testing"

func TestValidateLogin(t *testing.T) {
	cases := []struct {
		name  string
		form  Form
		field string
		msg   string
	}{
		{"missing email", Form{Password: "whatever1"}, "email", "Email is required"},
		{"bad email", Form{Email: "nope@", Password: "whatever1"}, "email", "Please enter a valid email address"},
		{"missing password", Form{Email: "a@b.co"}, "password", "Password is required"},
		{"short password", Form{Email: "a@b.co", Password: "short"}, "password", "Password must be at least 8 characters long"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			verr := c.form.Validate()
			if verr == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if got := verr.Fields[c.field]; got != c.msg {
				t.Errorf("Fields[%q] = %q, want %q", c.field, got, c.msg)
			}
		})
	}
}

func TestValidateLoginAcceptsWeakButLongPassword(t *testing.T) {
	f := Form{Email: "player@thinkle.test", Password: "alllowercase"}
	if verr := f.Validate(); verr != nil {
		t.Errorf("Validate() = %v, want nil for login", verr)
	}
}

func TestValidateSignUp(t *testing.T) {
	valid := Form{
		SignUp:          true,
		Email:           "player@thinkle.test",
		Username:        "word.smith_1",
		Password:        "Secret12!",
		ConfirmPassword: "Secret12!",
	}
	if verr := valid.Validate(); verr != nil {
		t.Fatalf("Validate() = %v, want nil", verr)
	}

	cases := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"missing username", func(f *Form) { f.Username = "" }, "username"},
		{"short username", func(f *Form) { f.Username = "ab" }, "username"},
		{"bad username charset", func(f *Form) { f.Username = "bad name" }, "username"},
		{"missing confirmation", func(f *Form) { f.ConfirmPassword = "" }, "confirmPassword"},
		{"mismatch", func(f *Form) { f.ConfirmPassword = "Secret12?" }, "confirmPassword"},
		{"no uppercase", func(f *Form) { f.Password, f.ConfirmPassword = "secret123", "secret123" }, "password"},
		{"no digit", func(f *Form) { f.Password, f.ConfirmPassword = "SecretWord", "SecretWord" }, "password"},
		{"bad symbol", func(f *Form) { f.Password, f.ConfirmPassword = "Secret12#", "Secret12#" }, "password"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := valid
			c.mutate(&f)
			verr := f.Validate()
			if verr == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if _, ok := verr.Fields[c.field]; !ok {
				t.Errorf("Fields = %v, want %q rejected", verr.Fields, c.field)
			}
		})
	}
}

func TestNormalizeKeepsPassword(t *testing.T) {
	f := Form{Email: "  a@b.co ", Username: " bob ", Password: " pass word "}
	f.Normalize()
	if f.Email != "a@b.co" || f.Username != "bob" {
		t.Errorf("Normalize() = %+v", f)
	}
	if f.Password != " pass word " {
		t.Errorf("password changed to %q", f.Password)
	}
}
