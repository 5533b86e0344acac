package messages

import (
	"context"
	"testing"

	listsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	"github.com/badaskaptan/kargomarket-sub002/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMessagesTest(t *testing.T) (*Service, *listsvc.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.Message{}, &domain.ListingEvent{}))
	return &Service{DB: db}, &listsvc.Service{DB: db}
}

func TestSendMessage_SelfMessagingRejected(t *testing.T) {
	s, _ := setupMessagesTest(t)
	userID := uuid.New()

	_, err := s.SendMessage(context.Background(), SendInput{
		SenderID:    userID,
		RecipientID: userID,
		Content:     "hello me",
	})
	require.Error(t, err)
	assert.Equal(t, "You cannot message yourself", err.Error())
}

func TestSendMessage_OwnListingRejected(t *testing.T) {
	s, ls := setupMessagesTest(t)
	ownerID := uuid.New()
	listing, err := ls.CreateListing(context.Background(), ownerID, listsvc.Draft{
		ListingType:   "load_listing",
		Title:         "My cargo",
		Description:   "desc",
		Origin:        "A",
		Destination:   "B",
		TransportMode: "multimodal",
		OfferType:     "negotiable",
	})
	require.NoError(t, err)

	_, err = s.SendMessage(context.Background(), SendInput{
		SenderID:    ownerID,
		RecipientID: uuid.New(),
		ListingID:   &listing.ListingID,
		Content:     "about my own listing",
	})
	require.Error(t, err)
	assert.Equal(t, "You cannot message your own listing", err.Error())
}

func TestSendMessage_AndConversationOrdering(t *testing.T) {
	s, _ := setupMessagesTest(t)
	a := uuid.New()
	b := uuid.New()

	_, err := s.SendMessage(context.Background(), SendInput{SenderID: a, RecipientID: b, Content: "first"})
	require.NoError(t, err)
	_, err = s.SendMessage(context.Background(), SendInput{SenderID: b, RecipientID: a, Content: "second"})
	require.NoError(t, err)

	msgs, err := s.GetConversation(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
}

func TestMarkRead_OnlyIncoming(t *testing.T) {
	s, _ := setupMessagesTest(t)
	a := uuid.New()
	b := uuid.New()

	_, err := s.SendMessage(context.Background(), SendInput{SenderID: b, RecipientID: a, Content: "incoming"})
	require.NoError(t, err)
	_, err = s.SendMessage(context.Background(), SendInput{SenderID: a, RecipientID: b, Content: "outgoing"})
	require.NoError(t, err)

	count, err := s.MarkRead(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Repeat is a no-op
	count, err = s.MarkRead(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
