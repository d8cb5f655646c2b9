package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
	"shukuma/webapp/internal/storage"
)

var (
	ErrTrackNotFound    = errors.New("track not found")
	ErrUnsupportedAudio = errors.New("only audio uploads are allowed")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
)

// TrackService serves white-noise tracks. Audio lives in object storage; the
// repository only keeps names and object keys.
type TrackService interface {
	List(ctx context.Context) ([]model.Track, error)
	CreateUpload(ctx context.Context, req model.TrackUploadRequest) (*model.TrackUploadResponse, error)
	Delete(ctx context.Context, trackID primitive.ObjectID) error
}

type trackService struct {
	trackRepo repository.TrackRepository
	storage   storage.FileStorage // nil when no bucket is configured
	prefix    string
}

func NewTrackService(trackRepo repository.TrackRepository, fileStorage storage.FileStorage, prefix string) TrackService {
	return &trackService{trackRepo: trackRepo, storage: fileStorage, prefix: prefix}
}

// List returns every track with a short-lived streaming URL.
func (s *trackService) List(ctx context.Context) ([]model.Track, error) {
	tracks, err := s.trackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 && s.storage == nil {
		return nil, storage.ErrNotConfigured
	}
	out := make([]model.Track, 0, len(tracks))
	for _, t := range tracks {
		url, err := s.storage.GeneratePresignedDownloadURL(ctx, t.ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			log.Printf("ERROR: presign track %s (%s): %v", t.ID.Hex(), t.ObjectKey, err)
			return nil, ErrDownloadURLError
		}
		out = append(out, model.Track{ID: t.ID.Hex(), Name: t.Name, URL: url, Duration: t.Duration})
	}
	return out, nil
}

// CreateUpload records the track and returns a presigned PUT for its audio.
func (s *trackService) CreateUpload(ctx context.Context, req model.TrackUploadRequest) (*model.TrackUploadResponse, error) {
	if s.storage == nil {
		return nil, storage.ErrNotConfigured
	}
	name := strings.TrimSpace(req.Name)
	contentType := req.ContentType
	if name == "" {
		return nil, ErrValidationFailed
	}
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, ErrUnsupportedAudio
	}

	track := &domain.Track{
		Name:        name,
		ObjectKey:   storage.ObjectKey(s.prefix, "track"+extensionFor(contentType)),
		ContentType: contentType,
		Duration:    req.Duration,
	}
	uploadURL, err := s.storage.GeneratePresignedUploadURL(ctx, track.ObjectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	if _, err := s.trackRepo.Create(ctx, track); err != nil {
		return nil, err
	}
	return &model.TrackUploadResponse{
		Track:     model.Track{ID: track.ID.Hex(), Name: track.Name, Duration: track.Duration},
		UploadURL: uploadURL,
	}, nil
}

// Delete removes the object first so a failure leaves the record to retry with.
func (s *trackService) Delete(ctx context.Context, trackID primitive.ObjectID) error {
	track, err := s.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrackNotFound
		}
		return err
	}
	if s.storage == nil {
		return storage.ErrNotConfigured
	}
	if err := s.storage.DeleteObject(ctx, track.ObjectKey); err != nil {
		return err
	}
	if err := s.trackRepo.Delete(ctx, trackID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/aac":
		return ".aac"
	default:
		return ""
	}
}
