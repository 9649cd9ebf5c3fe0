package store

import (
	"testing"
	"time"
)

func validPhoto(title string) GalleryPhoto {
	return GalleryPhoto{
		Title:    title,
		Category: "event",
		Image:    &Attachment{Name: title + ".jpg", Type: "image/jpeg", Size: 1 << 20},
	}
}

func TestAddPhotosBatchIDs(t *testing.T) {
	st := testStore(t)
	stamp := time.UnixMilli(1757000000000)
	st.Gallery.now = func() time.Time { return stamp }

	saved, err := st.Gallery.AddPhotos([]GalleryPhoto{
		validPhoto("one"), validPhoto("two"), validPhoto("three"),
	})
	if err != nil {
		t.Fatalf("add photos: %v", err)
	}
	want := []string{"1757000000000-0", "1757000000000-1", "1757000000000-2"}
	for i, photo := range saved {
		if photo.ID != want[i] {
			t.Fatalf("photo %d id = %q, want %q", i, photo.ID, want[i])
		}
	}
}

func TestAddPhotosBatchLimit(t *testing.T) {
	st := testStore(t)

	batch := []GalleryPhoto{
		validPhoto("1"), validPhoto("2"), validPhoto("3"), validPhoto("4"), validPhoto("5"),
	}
	if _, err := st.Gallery.AddPhotos(batch); err == nil {
		t.Fatal("five-photo batch accepted")
	}
	if _, err := st.Gallery.AddPhotos(nil); err == nil {
		t.Fatal("empty batch accepted")
	}
	if _, err := st.Gallery.AddPhotos(batch[:4]); err != nil {
		t.Fatalf("four-photo batch rejected: %v", err)
	}
}

func TestPhotoSizeLimit(t *testing.T) {
	st := testStore(t)

	big := validPhoto("big")
	big.Image.Size = 6 << 20
	if _, err := st.Gallery.AddPhotos([]GalleryPhoto{big}); err == nil {
		t.Fatal("oversized photo accepted")
	}
}

func TestAddVideoThumbnailLimit(t *testing.T) {
	st := testStore(t)

	video := GalleryVideo{
		Title:     "Opening Ceremony",
		Category:  "event",
		Video:     &Attachment{Name: "opening.mp4", Type: "video/mp4", Size: 20 << 20},
		Thumbnail: &Attachment{Name: "thumb.jpg", Type: "image/jpeg", Size: 3 << 20},
	}
	if _, err := st.Gallery.AddVideo(video); err == nil {
		t.Fatal("oversized thumbnail accepted")
	}

	video.Thumbnail.Size = 1 << 20
	saved, err := st.Gallery.AddVideo(video)
	if err != nil {
		t.Fatalf("add video: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("no id assigned")
	}
}

func TestAddPressImageLimit(t *testing.T) {
	st := testStore(t)

	press := PressItem{
		Title: "Local paper covers the debate",
		Type:  "article",
		Image: &Attachment{Name: "scan.jpg", Type: "image/jpeg", Size: 4 << 20},
	}
	if _, err := st.Gallery.AddPress(press); err == nil {
		t.Fatal("oversized press image accepted")
	}

	press.Image.Size = 2 << 20
	if _, err := st.Gallery.AddPress(press); err != nil {
		t.Fatalf("add press: %v", err)
	}
}

func TestDeletePhoto(t *testing.T) {
	st := testStore(t)
	saved, err := st.Gallery.AddPhotos([]GalleryPhoto{validPhoto("one")})
	if err != nil {
		t.Fatalf("add photos: %v", err)
	}

	if err := st.Gallery.DeletePhoto(saved[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	photos, err := st.Gallery.Photos()
	if err != nil {
		t.Fatalf("photos: %v", err)
	}
	if len(photos) != 0 {
		t.Fatalf("photos = %v, want empty", photos)
	}
	if err := st.Gallery.DeletePhoto(saved[0].ID); err == nil {
		t.Fatal("second delete succeeded")
	}
}
