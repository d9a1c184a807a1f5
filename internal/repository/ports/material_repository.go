package ports

import (
	"context"

	"github.com/campuscore/campus-backend/internal/domain"
)

type MaterialRepository interface {
	Create(ctx context.Context, facultyID, classID int64, courseID *int64, title string, link, note *string) (*domain.Material, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]domain.Material, error)
	ListForClass(ctx context.Context, classID int64, courseID *int64) ([]domain.Material, error)

	CreateAnnouncement(ctx context.Context, facultyID int64, classID *int64, title string, body *string) (*domain.Announcement, error)
	ListAnnouncementsByFaculty(ctx context.Context, facultyID int64) ([]domain.Announcement, error)
	// ListAnnouncementsForClass returns class-scoped and campus-wide entries.
	ListAnnouncementsForClass(ctx context.Context, classID int64) ([]domain.Announcement, error)
}
