package domain

import (
	"strings"
	"time"
)

// NoLocation labels every record when a single workbook is loaded.
const NoLocation = "N/A"

// AllLocations selects every location in a Filter.
const AllLocations = "Todas"

// OtherTopic is assigned to comments that match no configured topic.
const OtherTopic = "Other"

// TopicSeparator joins matched topics in ComplaintRecord.Topics.
const TopicSeparator = ", "

// ComplaintRecord is one guest review taken from one month sheet.
type ComplaintRecord struct {
	ReviewDate *time.Time `json:"review_date"`
	Unit       string     `json:"unit"`
	Score      *int       `json:"review_score"`
	Comment    string     `json:"comment"`
	Month      string     `json:"month"`
	Location   string     `json:"location"`
	Topics     string     `json:"topics"`
}

// HasBlankComment reports whether the comment is empty after trimming.
func (r ComplaintRecord) HasBlankComment() bool {
	return strings.TrimSpace(r.Comment) == ""
}

// Source describes one workbook and the location label its records carry.
type Source struct {
	Path     string `json:"path" yaml:"path"`
	Location string `json:"location" yaml:"location"`
}

// SourceSet is the explicit input layout: one workbook, or one per location.
type SourceSet struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// SingleSource returns a set holding one unlabelled workbook.
func SingleSource(path string) SourceSet {
	return SourceSet{Sources: []Source{{Path: path, Location: NoLocation}}}
}

// Paths lists the workbook paths in load order.
func (s SourceSet) Paths() []string {
	paths := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		paths = append(paths, src.Path)
	}
	return paths
}

// TopicKeywords binds a topic name to its trigger substrings.
type TopicKeywords struct {
	Topic    string   `json:"topic" yaml:"topic"`
	Triggers []string `json:"triggers" yaml:"triggers"`
}

// KeywordTable is ordered; classification output follows this order.
type KeywordTable []TopicKeywords

// Topics returns the topic names in declaration order.
func (t KeywordTable) Topics() []string {
	names := make([]string, 0, len(t))
	for _, tk := range t {
		names = append(names, tk.Topic)
	}
	return names
}

// SuggestionTable maps a topic name to its improvement suggestion text.
type SuggestionTable map[string]string

// Filter selects a display subset of the record set.
type Filter struct {
	Months   []string `json:"months" validate:"max=200,dive,required,max=64,selector"`
	Location string   `json:"location" validate:"max=64,selector"`
	Units    []string `json:"units" validate:"max=200,dive,required,max=128,selector"`
	Topics   []string `json:"topics" validate:"max=20,dive,required,max=64,selector"`
}

// FilterOptions lists the values available to the selectors.
type FilterOptions struct {
	Months    []string `json:"months"`
	Locations []string `json:"locations"`
	Units     []string `json:"units"`
	Topics    []string `json:"topics"`
}

// TopicCount is the exploded frequency of a single topic.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// TopicReport is the generated summary of the report-path subset.
type TopicReport struct {
	Location  string              `json:"location,omitempty"`
	Months    []string            `json:"months"`
	Ranked    []TopicCount        `json:"ranked"`
	Top       []TopicCount        `json:"top"`
	Remaining []TopicCount        `json:"remaining"`
	Examples  map[string][]string `json:"examples"`
	Markdown  string              `json:"markdown"`
}
