package domain

import "encoding/json"

// recordWire is the export shape: skills travel as one comma-joined string
// and instructors are always a list.
type recordWire struct {
	Title          string   `json:"title" yaml:"title"`
	CompletionDate string   `json:"completionDate" yaml:"completionDate"`
	Year           string   `json:"year,omitempty" yaml:"year,omitempty"`
	Skills         string   `json:"skills" yaml:"skills"`
	CertificateID  string   `json:"certificateId" yaml:"certificateId"`
	Instructors    []string `json:"instructors" yaml:"instructors"`
	Provider       Provider `json:"provider" yaml:"provider"`
	CourseURL      string   `json:"courseUrl" yaml:"courseUrl"`
	DocumentURL    string   `json:"documentUrl" yaml:"documentUrl"`
	CertificateURL string   `json:"certificateUrl" yaml:"certificateUrl"`
}

func (r Record) wire() recordWire {
	instructors := r.Instructors
	if instructors == nil {
		instructors = []string{}
	}
	return recordWire{
		Title:          r.Title,
		CompletionDate: r.CompletionDate,
		Year:           r.Year,
		Skills:         r.SkillsString(),
		CertificateID:  r.CertificateID,
		Instructors:    instructors,
		Provider:       r.Provider,
		CourseURL:      r.CourseURL,
		DocumentURL:    r.DocumentURL,
		CertificateURL: r.CertificateURL,
	}
}

func (r Record) MarshalJSON() ([]byte, error) { return json.Marshal(r.wire()) }

func (r *Record) UnmarshalJSON(b []byte) error {
	var w recordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = Record{
		Title:          w.Title,
		CompletionDate: w.CompletionDate,
		Year:           w.Year,
		Skills:         SplitSkills(w.Skills),
		CertificateID:  w.CertificateID,
		Instructors:    w.Instructors,
		Provider:       w.Provider,
		CourseURL:      w.CourseURL,
		DocumentURL:    w.DocumentURL,
		CertificateURL: w.CertificateURL,
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same shape as JSON.
func (r Record) MarshalYAML() (any, error) { return r.wire(), nil }
