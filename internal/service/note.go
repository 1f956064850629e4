package service

import (
	"context"
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
)

// NoteService handles per-user free-text notes
type NoteService struct {
	postgresRepo *repository.PostgresRepository
}

// NewNoteService creates a new note service
func NewNoteService(postgresRepo *repository.PostgresRepository) *NoteService {
	return &NoteService{
		postgresRepo: postgresRepo,
	}
}

// Create creates a note owned by the acting user
func (s *NoteService) Create(ctx context.Context, userID uint, req models.NoteRequest) (*models.Note, error) {
	note := &models.Note{
		UserID: userID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := s.postgresRepo.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// List retrieves the acting user's notes
func (s *NoteService) List(ctx context.Context, userID uint) ([]models.Note, error) {
	return s.postgresRepo.ListNotesByUser(ctx, userID)
}

// Update updates a note. Only the owner or an admin may update.
func (s *NoteService) Update(ctx context.Context, actor *models.User, id uint, req models.NoteRequest) (*models.Note, error) {
	note, err := s.ownedNote(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	note.Title = req.Title
	note.Body = req.Body
	if err := s.postgresRepo.UpdateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// Delete removes a note. Only the owner or an admin may delete.
func (s *NoteService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.ownedNote(ctx, actor, id); err != nil {
		return err
	}
	return s.postgresRepo.DeleteNote(ctx, id)
}

func (s *NoteService) ownedNote(ctx context.Context, actor *models.User, id uint) (*models.Note, error) {
	note, err := s.postgresRepo.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return note, nil
}
