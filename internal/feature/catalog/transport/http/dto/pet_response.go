package dto

import (
	"time"

	"petstore_backend/internal/feature/catalog/domain/entity"
)

// MessageRes is a generic message response.
type MessageRes struct {
	Message string `json:"message"`
}

// PetMutationRes is returned on create/update: a message plus the pet id.
type PetMutationRes struct {
	Message string `json:"message"`
	PetID   uint   `json:"petId"`
}

// CategoryRes is the JSON shape of a category.
type CategoryRes struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TagRes is the JSON shape of a tag.
type TagRes struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PhotoRes is the JSON shape of an uploaded photo.
type PhotoRes struct {
	ID    uint   `json:"id"`
	URL   string `json:"url"`
	PetID uint   `json:"petId"`
}

// PetRes is the JSON shape of a pet with its associations.
type PetRes struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Category  CategoryRes `json:"category"`
	Status    string      `json:"status"`
	Tags      []TagRes    `json:"tags"`
	Photos    []PhotoRes  `json:"photos"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewPetRes converts a pet entity into its response shape.
func NewPetRes(p *entity.Pet) PetRes {
	tags := make([]TagRes, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, TagRes{ID: t.ID, Name: t.Name})
	}
	photos := make([]PhotoRes, 0, len(p.Photos))
	for _, ph := range p.Photos {
		photos = append(photos, PhotoRes{ID: ph.ID, URL: ph.URL, PetID: ph.PetID})
	}
	return PetRes{
		ID:        p.ID,
		Name:      p.Name,
		Category:  CategoryRes{ID: p.Category.ID, Name: p.Category.Name},
		Status:    string(p.Status),
		Tags:      tags,
		Photos:    photos,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPetResList converts a slice of pet entities.
func NewPetResList(pets []entity.Pet) []PetRes {
	out := make([]PetRes, 0, len(pets))
	for i := range pets {
		out = append(out, NewPetRes(&pets[i]))
	}
	return out
}

// NewPhotoResList converts a slice of photo entities.
func NewPhotoResList(photos []entity.Photo) []PhotoRes {
	out := make([]PhotoRes, 0, len(photos))
	for _, ph := range photos {
		out = append(out, PhotoRes{ID: ph.ID, URL: ph.URL, PetID: ph.PetID})
	}
	return out
}
