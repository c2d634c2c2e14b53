package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// Affiliation buckets used by the dashboards and the chat insights
const (
	AffiliationSupporter  = "Supporter"
	AffiliationNeutral    = "Neutral"
	AffiliationOpponent   = "Opponent"
	AffiliationSwingVoter = "SwingVoter"
	AffiliationEmpty      = "Empty"
)

// Age bucket labels
const (
	AgeBucket18To25 = "18-25"
	AgeBucket26To40 = "26-40"
	AgeBucket41To60 = "41-60"
	AgeBucket60Plus = "60+"
)

// AgeBuckets lists the bucket labels in display order.
var AgeBuckets = []string{AgeBucket18To25, AgeBucket26To40, AgeBucket41To60, AgeBucket60Plus}

// Task status constants
const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
)

// DateLayout is the wire format for task due dates and report dates.
const DateLayout = "2006-01-02"

// Domain types

type Voter struct {
	ID                   int64   `db:"id" json:"id"`
	Name                 string  `db:"name" json:"name"`
	FatherOrHusbandName  *string `db:"father_or_husband_name" json:"father_or_husband_name"`
	Age                  *int    `db:"age" json:"age"`
	Gender               *string `db:"gender" json:"gender"`
	HouseNumber          *string `db:"house_number" json:"house_number"`
	EpicNumber           *string `db:"epic_number" json:"epic_number"`
	MobileNumber         *string `db:"mobile_number" json:"mobile_number"`
	Occupation           *string `db:"occupation" json:"occupation"`
	EducationLevel       *string `db:"education_level" json:"education_level"`
	PoliticalAffiliation *string `db:"political_affiliation" json:"political_affiliation"`
	KeyIssues            *string `db:"key_issues" json:"key_issues"`
	Remarks              *string `db:"remarks" json:"remarks"`
	HasVoted             bool    `db:"has_voted" json:"has_voted"`
	BoothID              *int64  `db:"booth_id" json:"booth_id"`
}

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	DueDate     *string   `db:"due_date" json:"due_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Communication struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      *string   `db:"body" json:"body"`
	Audience  *string   `db:"audience" json:"audience"` // e.g. "All", "Booth-12", "Youth"
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Report struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Content     *string   `db:"content" json:"content"`
	Date        *string   `db:"date" json:"date"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

type Booth struct {
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	BoothNumber     *string `db:"booth_number" json:"booth_number"`
	InChargeName    *string `db:"in_charge_name" json:"in_charge_name"`
	InChargeContact *string `db:"in_charge_contact" json:"in_charge_contact"`
}

type BoothWithStats struct {
	Booth
	TotalVoters int `json:"total_voters"`
	Supporters  int `json:"supporters"`
	Opponents   int `json:"opponents"`
	Neutral     int `json:"neutral"`
}

type Segment struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	FiltersJSON string          `db:"filters" json:"-"`
	Filters     json.RawMessage `db:"-" json:"filters"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type VoterLocation struct {
	ID           int64     `db:"id" json:"id"`
	VoterName    *string   `db:"voter_name" json:"voter_name"`
	VoterHouseNo *string   `db:"voter_house_no" json:"voter_house_no"`
	Landmark     *string   `db:"landmark" json:"landmark"`
	Latitude     *float64  `db:"latitude" json:"latitude"`
	Longitude    *float64  `db:"longitude" json:"longitude"`
	SavedAt      time.Time `db:"saved_at" json:"saved_at"`
}

// Aggregation rows returned by the voter store

// GroupCount is one row of a GROUP BY ... COUNT(*) query. Label is nil for NULL groups.
type GroupCount struct {
	Label *string `db:"label"`
	Count int     `db:"cnt"`
}

// AgeCount is one row of a GROUP BY age query. Age is nil for voters without an age.
type AgeCount struct {
	Age   *int `db:"age"`
	Count int  `db:"cnt"`
}

// Filters

// VisualizationFilter mirrors the query parameters of the candidate visualization endpoint.
// Empty fields impose no constraint.
type VisualizationFilter struct {
	Gender      string
	Affiliation string
	Age         string
	Issues      string
	Occupation  string
	Ward        string
	Education   string
}

// VoterListFilter mirrors the query parameters of the voter list endpoint.
type VoterListFilter struct {
	Gender      string
	Search      string
	Affiliation string
	Age         string
	Issues      string
	Occupation  string
	Page        int
	PerPage     int
}

// Request types

type ChatRequest struct {
	Message string `json:"message"`
}

type UpdateVoterRequest struct {
	MobileNumber         *string `json:"mobile_number"`
	Occupation           *string `json:"occupation"`
	EducationLevel       *string `json:"education_level"`
	PoliticalAffiliation *string `json:"political_affiliation"`
	KeyIssues            *string `json:"key_issues"`
	Remarks              *string `json:"remarks"`
}

type SaveVoterLocationRequest struct {
	Name        string   `json:"name"`
	HouseNumber *string  `json:"house_number"`
	Landmark    *string  `json:"landmark"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     string  `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     string  `json:"due_date"`
}

type CreateCommunicationRequest struct {
	Title    string  `json:"title"`
	Body     *string `json:"body"`
	Audience *string `json:"audience"`
}

type CreateReportRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
	Date    string  `json:"date"`
}

type BoothRequest struct {
	Name            *string `json:"name"`
	BoothNumber     *string `json:"booth_number"`
	InChargeName    *string `json:"in_charge_name"`
	InChargeContact *string `json:"in_charge_contact"`
}

type CreateSegmentRequest struct {
	Name    string          `json:"name"`
	Filters json.RawMessage `json:"filters"`
}

// Response types

type ChatResponse struct {
	Reply string `json:"reply"`
}

type VoterPage struct {
	Items []Voter `json:"items"`
	Page  int     `json:"page"`
	Pages int     `json:"pages"`
	Total int     `json:"total"`
}

type HouseholdVoter struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Landmark  string   `json:"landmark"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type Household struct {
	HouseNumber string           `json:"house_number"`
	Voters      []HouseholdVoter `json:"voters"`
}

type SaveVoterLocationResponse struct {
	Message  string        `json:"message"`
	Location VoterLocation `json:"location"`
}

type CountOfTotal struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

type KPIResponse struct {
	VotersContacted CountOfTotal `json:"votersContacted"`
	Supporters      int          `json:"supporters"`
	Undecided       int          `json:"undecided"`
	TasksCompleted  CountOfTotal `json:"tasksCompleted"`
}

type ActivityItem struct {
	Type      string    `json:"type"` // "task" or "communication"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type InsightsSummaryResponse struct {
	Summary string `json:"insights_summary"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Visualization result types

// IssueCount is a single issue token with its occurrence count.
type IssueCount struct {
	Issue string
	Count int
}

// IssueCounts is a ranked issue histogram. It encodes as a JSON object whose
// keys keep rank order.
type IssueCounts []IssueCount

func (ic IssueCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range ic {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Issue)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ic *IssueCounts) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ic = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("issue counts must be a JSON object")
	}

	out := IssueCounts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("issue counts key must be a string")
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return err
		}
		out = append(out, IssueCount{Issue: key, Count: n})
	}
	*ic = out
	return nil
}

// VisualizationResult is the payload of GET /api/candidate/visualization.
type VisualizationResult struct {
	Affiliations map[string]int `json:"affiliations"`
	AgeGroups    map[string]int `json:"ageGroups"`
	TopIssues    IssueCounts    `json:"topIssues"`
	GenderSplit  map[string]int `json:"genderSplit"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
