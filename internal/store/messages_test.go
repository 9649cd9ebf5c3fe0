package store

import (
	"testing"
)

func validMessage() ContactMessage {
	return ContactMessage{
		Name:    "Grace Atim",
		Email:   "grace@example.com",
		Subject: "Volunteering",
		Message: "How can my school help on event day?",
	}
}

func TestSubmitMessageStartsUnread(t *testing.T) {
	st := testStore(t)

	msg := validMessage()
	msg.Read = true
	msg.Replied = true
	saved, err := st.Messages.Submit(msg)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if saved.Read || saved.Replied {
		t.Fatalf("flags = read:%v replied:%v, want both false", saved.Read, saved.Replied)
	}
	if saved.ID == "" || saved.Timestamp.IsZero() {
		t.Fatal("identity not assigned")
	}
}

func TestMessageStatusTransitions(t *testing.T) {
	st := testStore(t)
	saved, err := st.Messages.Submit(validMessage())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	unread, _ := st.Messages.Filter(MessageUnread, "")
	if len(unread) != 1 {
		t.Fatalf("unread = %d, want 1", len(unread))
	}

	if err := st.Messages.MarkRead(saved.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	read, _ := st.Messages.Filter(MessageRead, "")
	if len(read) != 1 {
		t.Fatalf("read = %d, want 1", len(read))
	}
	unread, _ = st.Messages.Filter(MessageUnread, "")
	if len(unread) != 0 {
		t.Fatalf("unread after read = %d, want 0", len(unread))
	}

	if err := st.Messages.MarkReplied(saved.ID); err != nil {
		t.Fatalf("mark replied: %v", err)
	}
	// Replied wins over read in the filter.
	read, _ = st.Messages.Filter(MessageRead, "")
	if len(read) != 0 {
		t.Fatalf("read after reply = %d, want 0", len(read))
	}
	replied, _ := st.Messages.Filter(MessageReplied, "")
	if len(replied) != 1 {
		t.Fatalf("replied = %d, want 1", len(replied))
	}
}

func TestMarkRepliedImpliesRead(t *testing.T) {
	st := testStore(t)
	saved, err := st.Messages.Submit(validMessage())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := st.Messages.MarkReplied(saved.ID); err != nil {
		t.Fatalf("mark replied: %v", err)
	}
	got, err := st.Messages.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Read {
		t.Fatal("reply did not mark the message read")
	}
	count, err := st.Messages.UnreadCount()
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Fatalf("unread count = %d, want 0", count)
	}
}

func TestMessageSearch(t *testing.T) {
	st := testStore(t)
	if _, err := st.Messages.Submit(validMessage()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	other := validMessage()
	other.Name = "Henry Ssali"
	other.Subject = "Sponsorship"
	if _, err := st.Messages.Submit(other); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := st.Messages.Filter("", "sponsor")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Henry Ssali" {
		t.Fatalf("search result = %v", got)
	}
}

func TestMessageValidation(t *testing.T) {
	st := testStore(t)

	msg := validMessage()
	msg.Subject = ""
	if _, err := st.Messages.Submit(msg); err == nil {
		t.Fatal("missing subject accepted")
	}
	msg = validMessage()
	msg.Email = "nope"
	if _, err := st.Messages.Submit(msg); err == nil {
		t.Fatal("bad email accepted")
	}
}
