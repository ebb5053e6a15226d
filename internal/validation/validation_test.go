package validation

import (
	"errors"
	"fmt"
	"testing"
)

func TestContact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		fullName, email, subj, msg string
		wantErr                    bool
	}{
		{name: "all present", fullName: "Ann", email: "ann@x.com", subj: "Pricing", msg: "Hi"},
		{name: "email shape not checked", fullName: "Ann", email: "not-an-email", subj: "Pricing", msg: "Hi"},
		{name: "missing name", email: "ann@x.com", subj: "Pricing", msg: "Hi", wantErr: true},
		{name: "blank subject", fullName: "Ann", email: "ann@x.com", subj: "   ", msg: "Hi", wantErr: true},
		{name: "missing message", fullName: "Ann", email: "ann@x.com", subj: "Pricing", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Contact(tt.fullName, tt.email, tt.subj, tt.msg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				if Message(err) != MsgContactRequired {
					t.Fatalf("unexpected message %q", Message(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRequiredReportsFirstBlankField(t *testing.T) {
	err := Required(MsgApplicationRequired, Field{"firstName", "Ann"}, Field{"lastName", "\t"}, Field{"email", ""})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.Field != "lastName" {
		t.Fatalf("expected lastName, got %s", verr.Field)
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"ann@x.com", "a.b+c@sub.domain.io", "x@y.co.in"}
	invalid := []string{"not-an-email", "ann@x.c", "ann@@x.com", "ann @x.com", "@x.com", "ann@.com", "ann@x"}

	for _, v := range valid {
		if err := Email(v); err != nil {
			t.Fatalf("Email(%q) unexpected error: %v", v, err)
		}
	}
	for _, v := range invalid {
		if err := Email(v); Message(err) != MsgInvalidEmail {
			t.Fatalf("Email(%q) expected invalid, got %v", v, err)
		}
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"9123456789", true},
		{"6000000000", true},
		{"5123456789", false},
		{"912345678", false},
		{"91234567890", false},
		{"+919123456789", false},
		{"91234 56789", false},
		{"９123456789", false},
	}

	for _, tt := range tests {
		err := Phone(tt.in)
		if got := err == nil; got != tt.want {
			t.Fatalf("Phone(%q) valid=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", New("resume", "Resume file is required."))
	if !errors.Is(wrapped, ErrInvalid) {
		t.Fatalf("expected wrapped error to match ErrInvalid")
	}
	if Message(wrapped) != "Resume file is required." {
		t.Fatalf("unexpected message %q", Message(wrapped))
	}
	if Message(errors.New("disk full")) != "" {
		t.Fatalf("expected empty message for non-validation error")
	}
}

func TestApplicationRequired(t *testing.T) {
	err := ApplicationRequired(Field{"firstName", "Ann"}, Field{"github", " "})
	if Message(err) != MsgApplicationRequired {
		t.Fatalf("unexpected message %q", Message(err))
	}
	if err := ApplicationRequired(Field{"firstName", "Ann"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
