package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kinjal-s-patel/visitor-management-system/internal/host"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// LogsRoute is where the intake form sends the user after a successful
// registration.
const LogsRoute = "/visitorlogs"

// Suggested choices for the intake form. Free text is accepted as well.
var (
	PurposeSuggestions    = []string{"Business Meeting", "Personal Meeting", "Interview", "Maintenance"}
	DepartmentSuggestions = []string{"IT", "Recruitment", "Management"}
)

// HostLookup resolves host references.
type HostLookup interface {
	GetByID(ctx context.Context, id int64) (*host.Host, error)
}

// IntakeForm is a submitted visitor registration.
type IntakeForm struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Purpose       string `json:"purpose" validate:"required"`
	Department    string `json:"department" validate:"required"`
	HostID        int64  `json:"host_id" validate:"required,gt=0"`
	VisitDate     string `json:"visit_date"`
	InTime        string `json:"in_time"`
}

func (f *IntakeForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.Purpose = strings.TrimSpace(f.Purpose)
	f.Department = strings.TrimSpace(f.Department)
}

// Intake registers new visitors.
type Intake struct {
	store    visitor.Store
	hosts    HostLookup
	opts     Options
	validate *validator.Validate
}

// NewIntake creates an intake controller. hosts may be nil, in which case
// host references are not checked before insert.
func NewIntake(store visitor.Store, hosts HostLookup, opts Options) *Intake {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Intake{store: store, hosts: hosts, opts: opts.withDefaults(), validate: v}
}

// Submission is the outcome of a successful registration.
type Submission struct {
	ID     int64  `json:"id"`
	Next   string `json:"next"`
	Notice Notice `json:"notice"`
}

// Submit validates the form and stores a Pending visitor. A blank visit
// date or in-time defaults to now. Invalid input yields a
// *visitor.ValidationError and nothing is written; store failures match
// visitor.ErrStoreUnavailable.
func (in *Intake) Submit(ctx context.Context, form IntakeForm) (*Submission, error) {
	form.trim()
	rec, err := in.record(ctx, form)
	if err != nil {
		return nil, err
	}

	id, err := in.store.Insert(ctx, rec)
	if err != nil {
		in.opts.Logger.Error("registering visitor failed", "screen", "intake", "error", err)
		return nil, err
	}

	in.opts.Logger.Info("visitor registered", "id", id, "host_id", rec.HostID)
	return &Submission{
		ID:     id,
		Next:   LogsRoute,
		Notice: Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("%s has been registered.", rec.Name)},
	}, nil
}

func (in *Intake) record(ctx context.Context, form IntakeForm) (*visitor.NewRecord, error) {
	var problems []visitor.FieldProblem

	if err := in.validate.Struct(form); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validating visitor: %w", err)
		}
		for _, fe := range ve {
			problems = append(problems, visitor.FieldProblem{Field: fe.Field(), Message: formatFieldError(fe)})
		}
	}

	now := in.opts.Now().In(in.opts.Location)
	date := visitor.DateOf(now)
	if strings.TrimSpace(form.VisitDate) != "" {
		d, err := visitor.ParseDate(form.VisitDate)
		if err != nil {
			problems = append(problems, visitor.FieldProblem{Field: "visit_date", Message: "Visit date must be YYYY-MM-DD"})
		}
		date = d
	}
	clock := visitor.ClockOf(now)
	if strings.TrimSpace(form.InTime) != "" {
		c, err := visitor.ParseClock(form.InTime)
		if err != nil {
			problems = append(problems, visitor.FieldProblem{Field: "in_time", Message: "In time must be HH:MM"})
		}
		clock = c
	}

	if form.HostID > 0 && in.hosts != nil {
		if _, err := in.hosts.GetByID(ctx, form.HostID); err != nil {
			if !errors.Is(err, visitor.ErrNotFound) {
				in.opts.Logger.Error("looking up host failed", "screen", "intake", "host_id", form.HostID, "error", err)
				return nil, &visitor.StoreError{Op: "insert", Err: err}
			}
			problems = append(problems, visitor.FieldProblem{Field: "host_id", Message: "Selected host does not exist"})
		}
	}

	if len(problems) > 0 {
		in.opts.Logger.Debug("visitor rejected", slog.Int("problems", len(problems)))
		return nil, &visitor.ValidationError{Problems: problems}
	}

	return &visitor.NewRecord{
		Name:          form.Name,
		Email:         form.Email,
		ContactNumber: form.ContactNumber,
		Purpose:       form.Purpose,
		Department:    form.Department,
		HostID:        form.HostID,
		VisitDate:     date,
		InTime:        clock,
		Status:        visitor.StatusPending,
	}, nil
}

var fieldLabels = map[string]string{
	"name":           "Name",
	"email":          "Email",
	"contact_number": "Contact number",
	"purpose":        "Purpose of visit",
	"department":     "Department",
}

func formatFieldError(fe validator.FieldError) string {
	if fe.Field() == "host_id" {
		return "Please select a host"
	}
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email"
	}
	return fmt.Sprintf("%s failed validation for '%s'", label, fe.Tag())
}

// NoticeFor turns a Submit error into a message for the user.
func NoticeFor(err error) Notice {
	var ve *visitor.ValidationError
	if errors.As(err, &ve) {
		return Notice{Kind: NoticeError, Message: ve.Error()}
	}
	if errors.Is(err, visitor.ErrStoreUnavailable) {
		return Notice{Kind: NoticeError, Message: "The visitor could not be saved. Please try again later or contact your administrator."}
	}
	return Notice{Kind: NoticeError, Message: "Something went wrong."}
}
