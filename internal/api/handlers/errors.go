package handlers

import (
	"errors"

	"github.com/RMahshie/synphot/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// domainError maps domain failures to HTTP statuses. Anything unrecognized,
// including corrupt stored data, is a server error reported with msg.
func domainError(msg string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return huma.Error404NotFound(err.Error(), err)
	case errors.Is(err, models.ErrDomainMismatch),
		errors.Is(err, models.ErrNonPositiveFlux),
		errors.Is(err, models.ErrInvalidSpectrum):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	case errors.Is(err, models.ErrDataCorruption):
		log.Error().Err(err).Msg("Corrupt data")
		return huma.Error500InternalServerError(err.Error(), err)
	default:
		log.Error().Err(err).Msg(msg)
		return huma.Error500InternalServerError(msg, err)
	}
}
