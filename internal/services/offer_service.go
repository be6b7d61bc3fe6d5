package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"brocante/internal/apperr"
	"brocante/internal/models"
	"brocante/internal/repositories"
	"brocante/pkg/imagehost"
)

// Uploader sends an encoded picture to the external image host and returns
// its stable URL. Implemented by imagehost.Client.
type Uploader interface {
	Upload(dataURI string) (string, error)
}

// EventPublisher publishes domain events. Implemented by rabbitmq.Client.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OfferService handles business logic related to offers.
type OfferService struct {
	offerRepo repositories.OfferRepository
	uploader  Uploader
	events    EventPublisher // may be nil when no broker is configured
	validate  *validator.Validate
}

// NewOfferService creates a new OfferService.
func NewOfferService(offerRepo repositories.OfferRepository, uploader Uploader, events EventPublisher) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		uploader:  uploader,
		events:    events,
		validate:  validator.New(),
	}
}

// PublishInput carries the fields of a publish request.
type PublishInput struct {
	Title       string
	Description string
	Price       float64
	Brand       string
	Size        string
	Condition   string
	Color       string
	City        string
	Picture     []byte
	PictureMIME string
}

// Publish uploads the picture to the image host and persists the offer for
// the authenticated owner. Upload failures propagate without retry. After a
// successful create an offer.published event is emitted best effort.
func (s *OfferService) Publish(owner *models.User, in PublishInput) (*models.Offer, error) {
	if owner == nil || owner.ID == "" {
		return nil, apperr.ErrUnauthorized
	}

	dataURI := imagehost.EncodeDataURI(in.Picture, in.PictureMIME)
	secureURL, err := s.uploader.Upload(dataURI)
	if err != nil {
		return nil, err
	}

	offer := &models.Offer{
		ProductName:        in.Title,
		ProductDescription: in.Description,
		ProductPrice:       in.Price,
		Brand:              in.Brand,
		Size:               in.Size,
		Condition:          in.Condition,
		Color:              in.Color,
		City:               in.City,
		ImageURL:           secureURL,
		OwnerID:            owner.ID,
		Owner:              owner,
	}

	if err := s.validate.Struct(offer); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	if err := s.offerRepo.Create(offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.publishEvent(offer)

	return offer, nil
}

// publishEvent emits the offer.published event. Failures are logged and never
// fail the request.
func (s *OfferService) publishEvent(offer *models.Offer) {
	if s.events == nil {
		return
	}

	event := map[string]interface{}{
		"offerID": offer.ID,
		"ownerID": offer.OwnerID,
		"product": offer.ProductName,
		"price":   offer.ProductPrice,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal offer event for offer %s: %v", offer.ID, err)
		return
	}
	if err := s.events.Publish("offer.published", body); err != nil {
		log.Printf("Warning: failed to publish offer.published event for offer %s: %v", offer.ID, err)
	}
}

// Search retrieves one page of offers matching the query plus the total
// match count.
func (s *OfferService) Search(query repositories.SearchQuery) (int64, []models.Offer, error) {
	return s.offerRepo.Search(query)
}
