package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
)

type appInfoService struct {
	info models.ServerInfo
}

// NewAppInfoService reports cfg.Version together with the note limits
// enforced by the validation layer.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("func", "NewAppInfoService").Str("version", version).Msg("serving app info")

	return &appInfoService{
		info: models.ServerInfo{
			Version:         version,
			MaxTitleRunes:   maxTitleRunes,
			MaxContentBytes: maxContentBytes,
		},
	}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetServerInfo(context.Context) models.ServerInfo {
	return s.info
}
