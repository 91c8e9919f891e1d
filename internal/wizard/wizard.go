// Package wizard models listing creation as a three step state machine
// with guarded transitions.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrIncomplete is returned by Next when the current step is missing
	// required fields.
	ErrIncomplete = errors.New("step incomplete")
	// ErrNoPrevious is returned by Back on the first step.
	ErrNoPrevious = errors.New("no previous step")
	// ErrSubmitted is returned by any transition after submission.
	ErrSubmitted = errors.New("listing already submitted")
)

// State is a wizard step.
type State int

const (
	BasicInfo State = iota + 1
	Details
	Description
	Submitted
)

// Steps is the number of input steps before submission.
const Steps = 3

func (s State) String() string {
	switch s {
	case BasicInfo:
		return "basic-info"
	case Details:
		return "details"
	case Description:
		return "description"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Title is the heading shown for the step.
func (s State) Title() string {
	switch s {
	case BasicInfo:
		return "Basic Information"
	case Details:
		return "Property Details"
	case Description:
		return "Description"
	}
	return ""
}

// Draft is the listing being composed.
type Draft struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Price       int      `json:"price"`
	Beds        int      `json:"beds"`
	Baths       int      `json:"baths"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
}

// Wizard holds the current step and the draft.
type Wizard struct {
	State State `json:"state"`
	Draft Draft `json:"draft"`
}

// New returns a wizard on the first step with the form defaults filled in.
func New() *Wizard {
	return &Wizard{
		State: BasicInfo,
		Draft: Draft{Type: "room", Beds: 1, Baths: 1},
	}
}

// Missing lists the required fields of the current step that are empty.
func (w *Wizard) Missing() []string {
	d := w.Draft
	var out []string
	switch w.State {
	case BasicInfo:
		if strings.TrimSpace(d.Title) == "" {
			out = append(out, "title")
		}
		if d.Type == "" {
			out = append(out, "type")
		}
		if d.Location == "" {
			out = append(out, "location")
		}
		if d.Price <= 0 {
			out = append(out, "price")
		}
	case Details:
		if d.Beds <= 0 {
			out = append(out, "beds")
		}
		if d.Baths <= 0 {
			out = append(out, "baths")
		}
		if len(d.Amenities) == 0 {
			out = append(out, "amenities")
		}
	case Description:
		if strings.TrimSpace(d.Description) == "" {
			out = append(out, "description")
		}
	}
	return out
}

// CanProceed reports whether Next would succeed.
func (w *Wizard) CanProceed() bool {
	return w.State != Submitted && len(w.Missing()) == 0
}

// Next advances one step. From Description it submits the listing.
func (w *Wizard) Next() error {
	if w.State == Submitted {
		return ErrSubmitted
	}
	if missing := w.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrIncomplete, strings.Join(missing, ", "))
	}
	w.State++
	return nil
}

// Back returns to the previous step.
func (w *Wizard) Back() error {
	switch w.State {
	case Submitted:
		return ErrSubmitted
	case BasicInfo:
		return ErrNoPrevious
	}
	w.State--
	return nil
}

// ToggleAmenity adds the amenity if absent and removes it otherwise.
func (w *Wizard) ToggleAmenity(name string) {
	if i := slices.Index(w.Draft.Amenities, name); i >= 0 {
		w.Draft.Amenities = slices.Delete(w.Draft.Amenities, i, i+1)
		return
	}
	w.Draft.Amenities = append(w.Draft.Amenities, name)
}

// Done reports whether the listing was submitted.
func (w *Wizard) Done() bool {
	return w.State == Submitted
}
