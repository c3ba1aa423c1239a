package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/genego-hq/genego-site/internal/domain"
	"github.com/genego-hq/genego-site/pkg/publishers"
)

const (
	contactEmail      = "kontakt@genego.ch"
	maxContactFormMem = 64 << 10
)

type contactForm struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email,max=200"`
	Message string `validate:"required,max=5000"`
}

type contactView struct {
	chrome
	Email  string
	Form   contactForm
	Errors map[string]string
	Sent   bool
	Failed bool
}

func (s *Server) newContactView(r *http.Request) contactView {
	return contactView{
		chrome: s.layout(r, "Kontakt", contactSlug, s.content.Pages(r.Context())),
		Email:  contactEmail,
	}
}

func (s *Server) contactPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "contact", http.StatusOK, s.newContactView(r))
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactFormMem)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	view := s.newContactView(r)
	view.Form = contactForm{
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Message: strings.TrimSpace(r.PostForm.Get("message")),
	}
	if errs := view.Form.validate(); len(errs) > 0 {
		view.Errors = errs
		s.render(w, r, "contact", http.StatusUnprocessableEntity, view)
		return
	}

	msg := domain.ContactMessage{
		ID:         uuid.NewString(),
		Name:       view.Form.Name,
		Email:      view.Form.Email,
		Message:    view.Form.Message,
		ReceivedAt: s.now().UTC(),
	}
	if !s.deliver(r, msg) {
		view.Failed = true
		s.render(w, r, "contact", http.StatusServiceUnavailable, view)
		return
	}
	view.Form = contactForm{}
	view.Sent = true
	s.render(w, r, "contact", http.StatusOK, view)
}

// deliver publishes the message and reports whether it was accepted.
func (s *Server) deliver(r *http.Request, msg domain.ContactMessage) bool {
	if s.publisher == nil || s.publisher.Size() == 0 {
		s.log.InfoObj("contact submission received without publishers", "contact_id", msg.ID)
		return true
	}
	evt := publishers.NewContactEvent(s.siteName, msg)
	delivered, err := s.publisher.Publish(r.Context(), evt)
	meta := map[string]any{
		"contact_id": msg.ID,
		"event_id":   evt.ID,
		"delivered":  delivered,
		"publishers": s.publisher.Size(),
	}
	if err != nil {
		meta["error"] = err.Error()
		s.log.WarnObj("contact publish incomplete", "contact_publish", meta)
	} else {
		s.log.InfoObj("contact submission published", "contact_publish", meta)
	}
	return delivered > 0
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps a form field and the failing rule to the text shown
// next to the field.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Bitte geben Sie Ihren Namen ein.",
		"max":      "Der Name ist zu lang.",
	},
	"email": {
		"required": "Bitte geben Sie eine gültige E-Mail-Adresse ein.",
		"email":    "Bitte geben Sie eine gültige E-Mail-Adresse ein.",
		"max":      "Die E-Mail-Adresse ist zu lang.",
	},
	"message": {
		"required": "Bitte geben Sie eine Nachricht ein.",
		"max":      "Die Nachricht ist zu lang.",
	},
}

func (f contactForm) validate() map[string]string {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"message": "Die Nachricht konnte nicht geprüft werden."}
	}
	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = fieldMessages[field]["required"]
		}
		errs[field] = msg
	}
	return errs
}
