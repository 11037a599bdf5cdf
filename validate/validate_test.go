package validate

import (
	"testing"

	"github.com/fazhza18-web/japanese-game-code/model"
)

func TestStruct_Registration(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		reg       model.Registration
		wantField string
	}{
		{
			name: "Valid",
			reg: model.Registration{
				Name:            "Alice",
				Email:           "alice@example.com",
				Password:        "secret1",
				ConfirmPassword: "secret1",
			},
		},
		{
			name: "MissingName",
			reg: model.Registration{
				Email:           "alice@example.com",
				Password:        "secret1",
				ConfirmPassword: "secret1",
			},
			wantField: "Name",
		},
		{
			name: "BadEmail",
			reg: model.Registration{
				Name:            "Alice",
				Email:           "not-an-email",
				Password:        "secret1",
				ConfirmPassword: "secret1",
			},
			wantField: "Email",
		},
		{
			name: "ShortPassword",
			reg: model.Registration{
				Name:            "Alice",
				Email:           "alice@example.com",
				Password:        "abc",
				ConfirmPassword: "abc",
			},
			wantField: "Password",
		},
		{
			name: "ConfirmMismatch",
			reg: model.Registration{
				Name:            "Alice",
				Email:           "alice@example.com",
				Password:        "secret1",
				ConfirmPassword: "secret2",
			},
			wantField: "ConfirmPassword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Struct(tt.reg)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("got errors %v, want none", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("got no errors, want one on %s", tt.wantField)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("first error on %s, want %s", errs[0].Field, tt.wantField)
			}
			if errs[0].Message == "" {
				t.Error("error has no message")
			}
		})
	}
}

func TestStruct_Credentials(t *testing.T) {
	v := New()

	if errs := v.Struct(model.Credentials{Email: "a@b.co", Password: "secret1"}); len(errs) != 0 {
		t.Errorf("valid credentials rejected: %v", errs)
	}
	if errs := v.Struct(model.Credentials{}); len(errs) == 0 {
		t.Error("empty credentials accepted")
	}
}
