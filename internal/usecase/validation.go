package usecase

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/pkg/filetype"
)

const (
	studentPhoneLength = 10
	minPasswordLength  = 6

	passwordTooLongMessage = "Password must be at most 72 characters long"
)

// OrderSubmission carries raw form fields shared by every file of a submission.
type OrderSubmission struct {
	StudentName string
	PhoneNumber string
	Copies      string
	ColorType   string
}

// FileUpload is an uploaded document held in memory.
type FileUpload struct {
	Name        string
	ContentType string
	Content     []byte
}

// Registration holds student sign-up input.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type validSubmission struct {
	studentName string
	phoneNumber string
	copies      int
	colorType   model.ColorType
}

func validateSubmission(sub OrderSubmission, hasFile bool) (validSubmission, error) {
	v := validSubmission{
		studentName: strings.TrimSpace(sub.StudentName),
		phoneNumber: strings.TrimSpace(sub.PhoneNumber),
	}
	copies := strings.TrimSpace(sub.Copies)
	color := strings.TrimSpace(sub.ColorType)

	if v.studentName == "" || v.phoneNumber == "" || copies == "" || color == "" || !hasFile {
		return v, domainErrors.NewValidationError("form", "All fields are required: student_name, phone_number, copies, color_type, and file")
	}

	v.colorType = model.ColorType(color)
	if !v.colorType.Valid() {
		return v, domainErrors.NewValidationError("color_type", `color_type must be either "B&W" or "Color"`)
	}

	n, err := strconv.ParseInt(copies, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, domainErrors.NewValidationError("copies", "copies is out of range")
		}
		return v, domainErrors.NewValidationError("copies", "copies must be a whole number")
	}
	v.copies = int(n)

	return v, nil
}

func validateFile(file FileUpload, maxSize int64) (string, error) {
	if len(file.Content) == 0 {
		return "", domainErrors.NewValidationError("file", "File is empty")
	}
	if maxSize > 0 && int64(len(file.Content)) > maxSize {
		return "", domainErrors.NewValidationError("file", fmt.Sprintf("File too large. Maximum size is %dMB.", maxSize>>20))
	}
	return filetype.Validate(file.ContentType, file.Content)
}

func validateStatus(status model.OrderStatus) error {
	if status.Valid() {
		return nil
	}
	names := make([]string, 0, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		names = append(names, string(s))
	}
	return fmt.Errorf("%w. Must be one of: %s", domainErrors.ErrInvalidStatus, strings.Join(names, ", "))
}

func normalizeRegistration(in Registration) Registration {
	return Registration{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
	}
}

func validateRegistration(in Registration) error {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return domainErrors.NewValidationError("form", "All fields are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domainErrors.NewValidationError("email", "Email address is invalid")
	}
	if len(in.Password) < minPasswordLength {
		return domainErrors.NewValidationError("password", "Password must be at least 6 characters long")
	}
	if len(in.Password) > pkgAuth.MaxPasswordBytes {
		return domainErrors.NewValidationError("password", passwordTooLongMessage)
	}
	if len(in.Phone) != studentPhoneLength {
		return domainErrors.NewValidationError("phone", "Phone number must be 10 digits")
	}
	return nil
}
