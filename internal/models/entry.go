package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("branch", func(fl validator.FieldLevel) bool {
		return IsKnownBranch(fl.Field().String())
	})
	return v
}

// Company is a recruiter on one track. Name is the unique key; there is
// no rename or round-count edit.
type Company struct {
	Name           string `db:"name" json:"name"`
	RequiredRounds int    `db:"required_rounds" json:"requiredRounds"`
}

// CompanyInput is the add-company request body. The legacy cname/trounds
// and ocname/otrounds keys are accepted alongside name/requiredRounds.
type CompanyInput struct {
	Name           string `json:"name" validate:"required"`
	RequiredRounds *int   `json:"requiredRounds" validate:"required,gte=0"`
}

func (c *CompanyInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name           string `json:"name"`
		RequiredRounds *int   `json:"requiredRounds"`
		CName          string `json:"cname"`
		TRounds        *int   `json:"trounds"`
		OCName         string `json:"ocname"`
		OTRounds       *int   `json:"otrounds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Name = firstNonEmpty(raw.Name, raw.CName, raw.OCName)
	switch {
	case raw.RequiredRounds != nil:
		c.RequiredRounds = raw.RequiredRounds
	case raw.TRounds != nil:
		c.RequiredRounds = raw.TRounds
	default:
		c.RequiredRounds = raw.OTRounds
	}
	return nil
}

func (c *CompanyInput) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	return validate.Struct(c)
}

func (c *CompanyInput) Company() Company {
	company := Company{Name: c.Name}
	if c.RequiredRounds != nil {
		company.RequiredRounds = *c.RequiredRounds
	}
	return company
}

// ProgressRecord is one self-reported submission for a (student, company)
// pair. Submissions are appended; repeated pairs are kept as separate rows.
type ProgressRecord struct {
	ID            int64  `db:"id" json:"-"`
	Name          string `db:"name" json:"name" validate:"required"`
	RegNumber     string `db:"reg_number" json:"regNumber" validate:"required"`
	Branch        string `db:"branch" json:"branch" validate:"required,branch"`
	Company       string `db:"company" json:"company" validate:"required"`
	RoundsCleared int    `db:"rounds_cleared" json:"roundsCleared" validate:"gte=0"`
	Blog          string `db:"blog" json:"blog" validate:"required"`
}

// UnmarshalJSON also accepts roundsCleared as a numeric string, which is
// what a form select posts.
func (p *ProgressRecord) UnmarshalJSON(data []byte) error {
	type plain ProgressRecord
	var raw struct {
		plain
		RoundsCleared json.RawMessage `json:"roundsCleared"`
		PlacementBlog string          `json:"placementBlog"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rounds, err := parseRounds(raw.RoundsCleared)
	if err != nil {
		return err
	}

	*p = ProgressRecord(raw.plain)
	p.RoundsCleared = rounds
	if p.Blog == "" {
		p.Blog = raw.PlacementBlog
	}
	return nil
}

func parseRounds(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
	}
	return 0, apperrors.NewValidationError("roundsCleared", "roundsCleared must be a whole number")
}

func (p *ProgressRecord) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.RegNumber = strings.TrimSpace(p.RegNumber)
	p.Branch = strings.TrimSpace(p.Branch)
	p.Company = strings.TrimSpace(p.Company)
	return validate.Struct(p)
}

// PassedStudent is a progress row whose rounds_cleared equals the
// company's required rounds at query time.
type PassedStudent struct {
	Name      string `db:"name" json:"name"`
	RegNumber string `db:"reg_number" json:"registrationNumber"`
	Branch    string `db:"branch" json:"branch"`
}

const (
	StatusPlaced    = "Placed"
	StatusNotPlaced = "Not Placed"
)

type RosterEntry struct {
	Name           string   `json:"name"`
	RegNumber      string   `json:"registrationNumber"`
	Branch         string   `json:"branch"`
	PrimaryCompany string   `json:"primaryCompany"`
	Placements     []string `json:"placements"`
	Status         string   `json:"status"`
}

type ResumeSummary struct {
	RegNumber string `db:"reg_number" json:"registrationNumber"`
	Summary   string `db:"summary" json:"summary"`
}

type Credential struct {
	ID       string `db:"id"`
	Password string `db:"password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin student"`
}

func (l *LoginRequest) Validate() error {
	return validate.Struct(l)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
