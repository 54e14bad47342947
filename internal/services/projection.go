package services

import (
	"strings"

	"campusevents/internal/domain"
)

// AnnotateForViewer computes the per-viewer fields for each annotated event
// row. The rows come from a single repository query, so registration_count
// and user_registered already reflect one snapshot; this only derives the
// viewer-relative and capacity fields. For the anonymous viewer, is_creator
// and user_registered are always false while seat information is kept.
//
// IsFull is the one authoritative "event is full" computation; presentation
// layers display it and never recompute it. It blocks nothing by itself: the
// authoritative admission check is the repository's atomic Register.
func AnnotateForViewer(rows []*domain.AnnotatedEvent, viewerID int64) []*domain.EventView {
	views := make([]*domain.EventView, 0, len(rows))
	for _, row := range rows {
		v := &domain.EventView{
			Event:             row.Event,
			Organizer:         strings.TrimSpace(row.OrganizerFirstName + " " + row.OrganizerLastName),
			RegistrationCount: row.RegistrationCount,
		}
		if viewerID != domain.AnonymousViewer {
			v.UserRegistered = row.UserRegistered
			v.IsCreator = row.CreatedBy != nil && *row.CreatedBy == viewerID
		}
		if row.Capacity != nil {
			spots := *row.Capacity - row.RegistrationCount
			if spots < 0 {
				spots = 0
			}
			v.SpotsAvailable = &spots
			v.IsFull = row.RegistrationCount >= *row.Capacity
		}
		views = append(views, v)
	}
	return views
}
