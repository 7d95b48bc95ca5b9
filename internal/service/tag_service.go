package service

import (
	"github.com/recipe-api/internal/repository"
)

// TagService handles tag operations. Tags are created implicitly by
// recipe writes; this service covers the explicit list/rename/delete
// surface.
type TagService struct {
	tagRepo *repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// UpdateAttrRequest represents a tag/ingredient rename request
type UpdateAttrRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// List retrieves the user's tags ordered by name descending
func (s *TagService) List(userID uint) ([]AttrResponse, error) {
	tags, err := s.tagRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]AttrResponse, len(tags))
	for i, t := range tags {
		responses[i] = AttrResponse{ID: t.ID, Name: t.Name}
	}
	return responses, nil
}

// Update renames one of the user's tags
func (s *TagService) Update(userID, tagID uint, req *UpdateAttrRequest) (*AttrResponse, error) {
	tag, err := s.tagRepo.GetByIDAndUserID(tagID, userID)
	if err != nil {
		return nil, err
	}

	tag.Name = req.Name
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}

	return &AttrResponse{ID: tag.ID, Name: tag.Name}, nil
}

// Delete deletes one of the user's tags
func (s *TagService) Delete(userID, tagID uint) error {
	tag, err := s.tagRepo.GetByIDAndUserID(tagID, userID)
	if err != nil {
		return err
	}
	return s.tagRepo.Delete(tag)
}
