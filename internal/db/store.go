// exposes a Store interface that is passed to API handlers
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// display functions
	GetDisplayByID(id int) (model.Display, error)
	GetDisplayByDeviceID(deviceID string) (model.Display, error)
	IsDisplayPairedByDeviceID(deviceID string) (bool, error)
	ListDisplays() ([]model.Display, error)
	CreateDisplay(name string, location *string, createdBy int) (model.Display, error)
	UpdateDisplay(id int, name, location *string) error
	PairDisplay(id int, deviceID string) error
	AssignPlaylistToDisplay(displayID, playlistID int) error
	UnassignPlaylistFromDisplay(displayID int) error
	TouchDisplayLastSeen(deviceID string) error
	DeleteDisplay(id int) error
	GetDisplaysUsingPlaylist(playlistID int) ([]model.Display, error)

	// content functions
	CreateContent(name, typ, url string, defaultDuration, createdBy int) (model.Content, error)
	GetContentByID(id int) (model.Content, error)
	ListContent() ([]model.Content, error)
	UpdateContent(id int, name, url *string, defaultDuration *int) error
	DeleteContent(id int) error
	SearchContent(names, types []string, createdBy *int) ([]model.Content, error)

	// playlist functions
	CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists() ([]model.Playlist, error)
	UpdatePlaylist(id int, name, description *string) error
	DeletePlaylist(id int) error
	AddItemToPlaylist(playlistID int, in NewPlaylistItem, createdBy int) (model.PlaylistItem, error)
	UpdatePlaylistItem(itemID int, position, duration *int, transition *string, ruleID *int) error
	RemovePlaylistItem(itemID int) error
	ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error)
	ReorderPlaylistItems(playlistID int, itemIDs []int) error
	GetPlaylistForDisplay(displayID int) (model.Playlist, error)

	// recurrence rule functions
	CreateRecurrenceRule(r model.RecurrenceRule) (model.RecurrenceRule, error)
	GetRecurrenceRuleByID(id int) (model.RecurrenceRule, error)
	ListRecurrenceRules(ownerID int) ([]model.RecurrenceRule, error)
	UpdateRecurrenceRule(id int, r model.RecurrenceRule) error
	SetRecurrenceRuleActive(id int, active bool) error
	DeleteRecurrenceRule(id int) error
	PruneExpiredRules(before time.Time) (int64, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) GetDisplayByID(id int) (model.Display, error) { return GetDisplayByID(id) }
func (s *pgStore) GetDisplayByDeviceID(deviceID string) (model.Display, error) {
	return GetDisplayByDeviceID(deviceID)
}
func (s *pgStore) IsDisplayPairedByDeviceID(deviceID string) (bool, error) {
	return IsDisplayPairedByDeviceID(deviceID)
}
func (s *pgStore) ListDisplays() ([]model.Display, error) { return ListDisplays() }
func (s *pgStore) CreateDisplay(name string, location *string, createdBy int) (model.Display, error) {
	return CreateDisplay(name, location, createdBy)
}
func (s *pgStore) UpdateDisplay(id int, name, location *string) error {
	return UpdateDisplay(id, name, location)
}
func (s *pgStore) PairDisplay(id int, deviceID string) error { return PairDisplay(id, deviceID) }
func (s *pgStore) AssignPlaylistToDisplay(displayID, playlistID int) error {
	return AssignPlaylistToDisplay(displayID, playlistID)
}
func (s *pgStore) UnassignPlaylistFromDisplay(displayID int) error {
	return UnassignPlaylistFromDisplay(displayID)
}
func (s *pgStore) TouchDisplayLastSeen(deviceID string) error { return TouchDisplayLastSeen(deviceID) }
func (s *pgStore) DeleteDisplay(id int) error                 { return DeleteDisplay(id) }
func (s *pgStore) GetDisplaysUsingPlaylist(playlistID int) ([]model.Display, error) {
	return GetDisplaysUsingPlaylist(playlistID)
}

func (s *pgStore) CreateContent(name, typ, url string, defaultDuration, createdBy int) (model.Content, error) {
	return CreateContent(name, typ, url, defaultDuration, createdBy)
}
func (s *pgStore) GetContentByID(id int) (model.Content, error) { return GetContentByID(id) }
func (s *pgStore) ListContent() ([]model.Content, error)        { return ListContent() }
func (s *pgStore) UpdateContent(id int, name, url *string, defaultDuration *int) error {
	return UpdateContent(id, name, url, defaultDuration)
}
func (s *pgStore) DeleteContent(id int) error { return DeleteContent(id) }
func (s *pgStore) SearchContent(names, types []string, createdBy *int) ([]model.Content, error) {
	return SearchContent(names, types, createdBy)
}

func (s *pgStore) CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	return CreatePlaylist(name, description, createdBy)
}
func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) { return GetPlaylistByID(id) }
func (s *pgStore) ListPlaylists() ([]model.Playlist, error)       { return ListPlaylists() }
func (s *pgStore) UpdatePlaylist(id int, name, description *string) error {
	return UpdatePlaylist(id, name, description)
}
func (s *pgStore) DeletePlaylist(id int) error { return DeletePlaylist(id) }
func (s *pgStore) AddItemToPlaylist(playlistID int, in NewPlaylistItem, createdBy int) (model.PlaylistItem, error) {
	return AddItemToPlaylist(playlistID, in, createdBy)
}
func (s *pgStore) UpdatePlaylistItem(itemID int, position, duration *int, transition *string, ruleID *int) error {
	return UpdatePlaylistItem(itemID, position, duration, transition, ruleID)
}
func (s *pgStore) RemovePlaylistItem(itemID int) error { return RemovePlaylistItem(itemID) }
func (s *pgStore) ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	return ListPlaylistItems(playlistID)
}
func (s *pgStore) ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	return ReorderPlaylistItems(playlistID, itemIDs)
}
func (s *pgStore) GetPlaylistForDisplay(displayID int) (model.Playlist, error) {
	return GetPlaylistForDisplay(displayID)
}

func (s *pgStore) CreateRecurrenceRule(r model.RecurrenceRule) (model.RecurrenceRule, error) {
	return CreateRecurrenceRule(r)
}
func (s *pgStore) GetRecurrenceRuleByID(id int) (model.RecurrenceRule, error) {
	return GetRecurrenceRuleByID(id)
}
func (s *pgStore) ListRecurrenceRules(ownerID int) ([]model.RecurrenceRule, error) {
	return ListRecurrenceRules(ownerID)
}
func (s *pgStore) UpdateRecurrenceRule(id int, r model.RecurrenceRule) error {
	return UpdateRecurrenceRule(id, r)
}
func (s *pgStore) SetRecurrenceRuleActive(id int, active bool) error {
	return SetRecurrenceRuleActive(id, active)
}
func (s *pgStore) DeleteRecurrenceRule(id int) error { return DeleteRecurrenceRule(id) }
func (s *pgStore) PruneExpiredRules(before time.Time) (int64, error) {
	return PruneExpiredRules(before)
}
