package models

import (
	"fmt"
	"strings"
)

// Track is one of the two parallel recruitment pipelines. Tracks share
// every operation but never share rows.
type Track string

const (
	OnCampus  Track = "on_campus"
	OffCampus Track = "off_campus"
)

var Tracks = []Track{OnCampus, OffCampus}

func ParseTrack(s string) (Track, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on_campus", "oncampus", "on":
		return OnCampus, nil
	case "off_campus", "offcampus", "off":
		return OffCampus, nil
	default:
		return "", fmt.Errorf("unknown track %q", s)
	}
}

func (t Track) Valid() bool {
	return t == OnCampus || t == OffCampus
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// Branches lists the accepted values for ProgressRecord.Branch. Matching
// is case-insensitive; the submitted spelling is what gets stored.
var Branches = []string{"CSE", "CS", "IT", "AI&DS", "AI&ML", "ECE", "EEE", "Civil", "Mech"}

func IsKnownBranch(s string) bool {
	for _, b := range Branches {
		if strings.EqualFold(b, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
