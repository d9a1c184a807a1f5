package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
)

type MaterialRepository struct {
	db *sqlx.DB
}

func NewMaterialRepo(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, facultyID, classID int64, courseID *int64, title string, link, note *string) (*domain.Material, error) {
	const query = `
        INSERT INTO materials (faculty_id, class_id, course_id, title, link, note)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, faculty_id, class_id, course_id, title, link, note, created_at
    `
	var material domain.Material
	err := r.db.QueryRowxContext(ctx, query, facultyID, classID, courseID, title, link, note).StructScan(&material)
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]domain.Material, error) {
	const query = `
        SELECT m.id, m.faculty_id, m.class_id, cl.name AS class_name,
               m.course_id, m.title, m.link, m.note, m.created_at
        FROM materials m
        JOIN classes cl ON cl.id = m.class_id
        WHERE m.faculty_id = $1
        ORDER BY m.created_at DESC
    `
	materials := []domain.Material{}
	if err := r.db.SelectContext(ctx, &materials, query, facultyID); err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *MaterialRepository) ListForClass(ctx context.Context, classID int64, courseID *int64) ([]domain.Material, error) {
	query := `
        SELECT m.id, m.faculty_id, m.class_id, m.course_id, m.title, m.link, m.note, m.created_at
        FROM materials m
        WHERE m.class_id = $1`
	args := []any{classID}
	if courseID != nil {
		args = append(args, *courseID)
		query += " AND m.course_id = $2"
	}
	query += " ORDER BY m.created_at DESC"
	materials := []domain.Material{}
	if err := r.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *MaterialRepository) CreateAnnouncement(ctx context.Context, facultyID int64, classID *int64, title string, body *string) (*domain.Announcement, error) {
	const query = `
        INSERT INTO announcements (faculty_id, class_id, title, body)
        VALUES ($1, $2, $3, $4)
        RETURNING id, faculty_id, class_id, title, body, created_at
    `
	var announcement domain.Announcement
	err := r.db.QueryRowxContext(ctx, query, facultyID, classID, title, body).StructScan(&announcement)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *MaterialRepository) ListAnnouncementsByFaculty(ctx context.Context, facultyID int64) ([]domain.Announcement, error) {
	const query = `
        SELECT a.id, a.faculty_id, a.class_id, cl.name AS class_name,
               a.title, a.body, a.created_at
        FROM announcements a
        LEFT JOIN classes cl ON cl.id = a.class_id
        WHERE a.faculty_id = $1
        ORDER BY a.created_at DESC
    `
	announcements := []domain.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, query, facultyID); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *MaterialRepository) ListAnnouncementsForClass(ctx context.Context, classID int64) ([]domain.Announcement, error) {
	const query = `
        SELECT a.id, a.faculty_id, a.class_id, a.title, a.body, a.created_at
        FROM announcements a
        WHERE a.class_id = $1 OR a.class_id IS NULL
        ORDER BY a.created_at DESC
    `
	announcements := []domain.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, query, classID); err != nil {
		return nil, err
	}
	return announcements, nil
}
