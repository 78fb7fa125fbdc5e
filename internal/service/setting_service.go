package service

import (
	"fmt"
	"strconv"

	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/plumecms/plume-backend/internal/repository"
)

// SettingType value type of a setting key
type SettingType int

const (
	SettingString SettingType = iota
	SettingInt
	SettingBool
)

// Known setting keys. The set is closed: anything else is rejected at this
// boundary instead of trusting the caller to pick a type.
const (
	SettingSiteTitle         = "site.title"
	SettingSiteDescription   = "site.description"
	SettingDefaultPostStatus = "post.default_status"
	SettingCommentsEnabled   = "post.comments_enabled"
	SettingRevisionRetention = "revision.retention"
)

var settingKinds = map[string]SettingType{
	SettingSiteTitle:         SettingString,
	SettingSiteDescription:   SettingString,
	SettingDefaultPostStatus: SettingString,
	SettingCommentsEnabled:   SettingBool,
	SettingRevisionRetention: SettingInt,
}

// SettingService typed access to site settings. Unset keys fall back to
// defaults; unknown keys and type-mismatched values never reach the store.
type SettingService struct {
	repo     repository.SettingRepository
	defaults map[string]string
}

// NewSettingService creates a new SettingService. retentionDefault is the
// configured revision retention used when the setting row is unset.
func NewSettingService(repo repository.SettingRepository, retentionDefault int) *SettingService {
	if retentionDefault < 1 {
		retentionDefault = 5
	}
	return &SettingService{
		repo: repo,
		defaults: map[string]string{
			SettingSiteTitle:         "Plume",
			SettingSiteDescription:   "",
			SettingDefaultPostStatus: string(domain.StatusPublished),
			SettingCommentsEnabled:   "true",
			SettingRevisionRetention: strconv.Itoa(retentionDefault),
		},
	}
}

// Get returns the effective raw value for a known key
func (s *SettingService) Get(key string) (string, error) {
	if _, ok := settingKinds[key]; !ok {
		return "", fmt.Errorf("%q: %w", key, common.ErrUnknownSetting)
	}
	setting, err := s.repo.Find(key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return s.defaults[key], nil
	}
	return setting.Value, nil
}

// GetInt returns the effective value of an int-typed key
func (s *SettingService) GetInt(key string) (int, error) {
	if settingKinds[key] != SettingInt {
		return 0, fmt.Errorf("%q is not an int setting: %w", key, common.ErrUnknownSetting)
	}
	raw, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}

// GetBool returns the effective value of a bool-typed key
func (s *SettingService) GetBool(key string) (bool, error) {
	if settingKinds[key] != SettingBool {
		return false, fmt.Errorf("%q is not a bool setting: %w", key, common.ErrUnknownSetting)
	}
	raw, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(raw)
}

// Set validates and stores a value for a known key
func (s *SettingService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%q: %w", key, common.ErrUnknownSetting)
	}
	switch kind {
	case SettingInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%q wants an integer: %w", key, common.ErrInvalidInput)
		}
	case SettingBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%q wants a boolean: %w", key, common.ErrInvalidInput)
		}
	}
	if key == SettingDefaultPostStatus && !domain.PostStatus(value).Valid() {
		return fmt.Errorf("unknown status %q: %w", value, common.ErrInvalidInput)
	}
	return s.repo.Upsert(&domain.Setting{Key: key, Value: value})
}

// All returns every known key with its effective value
func (s *SettingService) All() (map[string]string, error) {
	stored, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settingKinds))
	for key := range settingKinds {
		out[key] = s.defaults[key]
	}
	for _, setting := range stored {
		if _, ok := settingKinds[setting.Key]; ok {
			out[setting.Key] = setting.Value
		}
	}
	return out, nil
}

// RevisionRetention returns the active revision retention limit, never
// below 1
func (s *SettingService) RevisionRetention() int {
	n, err := s.GetInt(SettingRevisionRetention)
	if err != nil || n < 1 {
		n, _ = strconv.Atoi(s.defaults[SettingRevisionRetention])
	}
	return n
}

// DefaultPostStatus returns the status assigned to posts created without one
func (s *SettingService) DefaultPostStatus() domain.PostStatus {
	raw, err := s.Get(SettingDefaultPostStatus)
	if err != nil || !domain.PostStatus(raw).Valid() {
		return domain.StatusPublished
	}
	return domain.PostStatus(raw)
}
