package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sdweddings/backend/internal/analytics"
	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/mailer"
	"github.com/sdweddings/backend/internal/repo"
)

// EventContactSubmitted is tracked after every accepted contact form.
const EventContactSubmitted = "contact_form_submitted"

// ContactForm is the contact form payload after transport decoding.
// Date is "YYYY-MM-DD" or empty.
type ContactForm struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Venue   string `json:"venue" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}

// ContactService accepts contact form submissions.
type ContactService struct {
	inquiries repo.InquiryRepo
	mail      mailer.Sender
	tracker   analytics.Tracker
	business  mailer.Business
	validate  *validator.Validate
	log       *zap.Logger
}

// NewContactService constructs a ContactService. An empty business.Inbox
// disables the internal notification email.
func NewContactService(inquiries repo.InquiryRepo, mail mailer.Sender, tracker analytics.Tracker, business mailer.Business, log *zap.Logger) *ContactService {
	return &ContactService{
		inquiries: inquiries,
		mail:      mail,
		tracker:   tracker,
		business:  business,
		validate:  newValidator(),
		log:       log,
	}
}

// Submit validates the form, stores it and sends the confirmation email.
//
// Storage and the confirmation email must succeed. The business
// notification and the analytics event are best effort and only logged.
func (s *ContactService) Submit(ctx context.Context, form ContactForm) (domain.Inquiry, error) {
	form = trimForm(form)
	if err := s.validate.Struct(form); err != nil {
		return domain.Inquiry{}, fmt.Errorf("service.ContactService.Submit: %w: %s", domain.ErrValidation, describe(err))
	}

	in := domain.Inquiry{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Venue:   form.Venue,
		Message: form.Message,
	}
	if form.Date != "" {
		d, _ := time.Parse(time.DateOnly, form.Date) // format checked by the validator
		in.WeddingDate = &d
	}

	saved, err := s.inquiries.Create(ctx, in)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("service.ContactService.Submit: %w", err)
	}

	confirmation, err := mailer.Confirmation(s.business, saved)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("service.ContactService.Submit: render confirmation: %w", err)
	}
	if _, err := s.mail.Send(ctx, confirmation); err != nil {
		return domain.Inquiry{}, fmt.Errorf("service.ContactService.Submit: send confirmation: %w", err)
	}

	s.notify(ctx, saved)

	props := map[string]any{
		"inquiry_id": saved.ID.String(),
		"has_date":   saved.WeddingDate != nil,
		"has_venue":  saved.Venue != "",
		"has_phone":  saved.Phone != "",
	}
	if err := s.tracker.Track(ctx, EventContactSubmitted, props); err != nil {
		s.log.Warn("track contact submission", zap.Error(err))
	}
	return saved, nil
}

func (s *ContactService) notify(ctx context.Context, in domain.Inquiry) {
	if s.business.Inbox == "" {
		return
	}
	msg, err := mailer.Notification(s.business, in)
	if err == nil {
		_, err = s.mail.Send(ctx, msg)
	}
	if err != nil {
		s.log.Warn("send inquiry notification", zap.String("inquiry_id", in.ID.String()), zap.Error(err))
	}
}

func trimForm(f ContactForm) ContactForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Date = strings.TrimSpace(f.Date)
	f.Venue = strings.TrimSpace(f.Venue)
	f.Message = strings.TrimSpace(f.Message)
	return f
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describe turns validator errors into a short message for the visitor,
// e.g. "email must be a valid email address".
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" "+ruleMessage(fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func ruleMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "is too long"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
