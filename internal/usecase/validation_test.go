package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
)

func TestValidateSubmissionTrimsAndParses(t *testing.T) {
	v, err := validateSubmission(OrderSubmission{StudentName: " Asha ", PhoneNumber: " 123 ", Copies: " 3 ", ColorType: "Color"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.studentName != "Asha" || v.phoneNumber != "123" || v.copies != 3 || v.colorType != model.ColorTypeColor {
		t.Fatalf("unexpected result %+v", v)
	}
}

func TestValidateSubmissionAcceptsAnyInteger(t *testing.T) {
	// copies range is not enforced beyond being an integer
	for _, copies := range []string{"0", "-1", "500", "2147483647", "-2147483648"} {
		if _, err := validateSubmission(OrderSubmission{StudentName: "a", PhoneNumber: "1", Copies: copies, ColorType: "B&W"}, true); err != nil {
			t.Fatalf("copies %s: unexpected error %v", copies, err)
		}
	}
}

func TestValidateSubmissionRejectsCopiesOutsideColumnRange(t *testing.T) {
	for _, copies := range []string{"2147483648", "-2147483649", "99999999999"} {
		_, err := validateSubmission(OrderSubmission{StudentName: "a", PhoneNumber: "1", Copies: copies, ColorType: "B&W"}, true)
		var vErr *domainErrors.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "copies" {
			t.Fatalf("copies %s: expected copies validation error, got %v", copies, err)
		}
		if err.Error() != "copies is out of range" {
			t.Fatalf("copies %s: unexpected message %q", copies, err.Error())
		}
	}
}

func TestValidateFile(t *testing.T) {
	if _, err := validateFile(FileUpload{ContentType: "application/pdf"}, 1024); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for empty file, got %v", err)
	}
	ct, err := validateFile(FileUpload{ContentType: "application/pdf", Content: pdfBytes}, 0)
	if err != nil || ct != "application/pdf" {
		t.Fatalf("unexpected result %q %v", ct, err)
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range model.OrderStatuses {
		if err := validateStatus(s); err != nil {
			t.Fatalf("status %s: unexpected error %v", s, err)
		}
	}
	err := validateStatus("Done")
	if !errors.Is(err, domainErrors.ErrInvalidStatus) || !strings.HasPrefix(err.Error(), domainErrors.ErrInvalidStatus.Error()) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNormalizeRegistration(t *testing.T) {
	in := normalizeRegistration(Registration{Name: " A ", Email: " X@Y.COM ", Phone: " 1 ", Password: " p "})
	if in.Name != "A" || in.Email != "x@y.com" || in.Phone != "1" || in.Password != " p " {
		t.Fatalf("unexpected normalisation %+v", in)
	}
}
