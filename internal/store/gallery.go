package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Gallery upload limits.
const (
	maxPhotosPerBatch  = 4
	maxPhotoBytes      = 5 << 20
	maxThumbnailBytes  = 2 << 20
	maxPressImageBytes = 3 << 20
)

// Gallery manages the photo, video and press collections.
type Gallery struct {
	photos   *Collection[GalleryPhoto]
	videos   *Collection[GalleryVideo]
	press    *Collection[PressItem]
	notifier *notify.Notifier
	now      func() time.Time
}

func NewGallery(adapter *storage.Adapter, notifier *notify.Notifier) *Gallery {
	return &Gallery{
		photos:   NewCollection[GalleryPhoto](adapter, KeyGalleryPhotos, nil),
		videos:   NewCollection[GalleryVideo](adapter, KeyGalleryVideos, nil),
		press:    NewCollection[PressItem](adapter, KeyGalleryPress, nil),
		notifier: notifier,
		now:      time.Now,
	}
}

// AddPhotos appends a batch of up to four photos in one write. Each
// photo in the batch gets a timestamp+index id so the batch stays
// unique even though it shares one creation instant.
func (g *Gallery) AddPhotos(photos []GalleryPhoto) ([]GalleryPhoto, error) {
	if len(photos) == 0 {
		return nil, services.ErrBadRequest("at least one photo is required")
	}
	if len(photos) > maxPhotosPerBatch {
		return nil, services.ErrBadRequest(fmt.Sprintf("at most %d photos per upload", maxPhotosPerBatch))
	}
	now := g.now()
	for i := range photos {
		if err := validateRecord(photos[i]); err != nil {
			return nil, err
		}
		if err := checkImage(photos[i].Image, maxPhotoBytes, "photo", "5MB"); err != nil {
			return nil, err
		}
		photos[i].ID = fmt.Sprintf("%s-%d", timeID(now), i)
		photos[i].CreatedAt = now
	}
	existing, err := g.photos.LoadAll()
	if err != nil {
		return nil, err
	}
	if err := g.photos.ReplaceAll(append(existing, photos...)); err != nil {
		return nil, err
	}
	g.notifier.Announce(KeyGalleryPhotos)
	return photos, nil
}

// AddVideo appends one video, optionally with a thumbnail.
func (g *Gallery) AddVideo(v GalleryVideo) (GalleryVideo, error) {
	if err := validateRecord(v); err != nil {
		return GalleryVideo{}, err
	}
	if err := checkImage(v.Thumbnail, maxThumbnailBytes, "thumbnail", "2MB"); err != nil {
		return GalleryVideo{}, err
	}
	v.CreatedAt = g.now()
	v.ID = timeID(v.CreatedAt)
	if err := g.videos.Append(v); err != nil {
		return GalleryVideo{}, err
	}
	g.notifier.Announce(KeyGalleryVideos)
	return v, nil
}

// AddPress appends one press item.
func (g *Gallery) AddPress(p PressItem) (PressItem, error) {
	if err := validateRecord(p); err != nil {
		return PressItem{}, err
	}
	if err := checkImage(p.Image, maxPressImageBytes, "press image", "3MB"); err != nil {
		return PressItem{}, err
	}
	p.CreatedAt = g.now()
	p.ID = timeID(p.CreatedAt)
	if err := g.press.Append(p); err != nil {
		return PressItem{}, err
	}
	g.notifier.Announce(KeyGalleryPress)
	return p, nil
}

func (g *Gallery) Photos() ([]GalleryPhoto, error) { return g.photos.LoadAll() }
func (g *Gallery) Videos() ([]GalleryVideo, error) { return g.videos.LoadAll() }
func (g *Gallery) Press() ([]PressItem, error)     { return g.press.LoadAll() }

// DeletePhoto removes one photo by id.
func (g *Gallery) DeletePhoto(id string) error {
	removed, err := g.photos.RemoveMatching(func(p GalleryPhoto) bool { return p.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("photo not found")
	}
	g.notifier.Announce(KeyGalleryPhotos)
	return nil
}

func (g *Gallery) DeleteVideo(id string) error {
	removed, err := g.videos.RemoveMatching(func(v GalleryVideo) bool { return v.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("video not found")
	}
	g.notifier.Announce(KeyGalleryVideos)
	return nil
}

func (g *Gallery) DeletePress(id string) error {
	removed, err := g.press.RemoveMatching(func(p PressItem) bool { return p.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("press item not found")
	}
	g.notifier.Announce(KeyGalleryPress)
	return nil
}

func checkImage(a *Attachment, maxBytes int64, kind, limit string) error {
	if a == nil {
		return nil
	}
	if !strings.HasPrefix(a.Type, "image/") {
		return services.ErrBadRequest(kind + " must be an image file")
	}
	if a.Size > maxBytes {
		return services.ErrBadRequest(kind + " must be " + limit + " or smaller")
	}
	return nil
}
