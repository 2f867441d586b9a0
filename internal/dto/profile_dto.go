package dto

import (
	"strings"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
)

const MaxInterests = 10

type UpdateProfileRequest struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
	Region   string `json:"region"`
}

func (r *UpdateProfileRequest) Validate() error {
	if strings.TrimSpace(r.Nickname) == "" {
		return apperr.BadRequest("nickname is required")
	}
	return nil
}

type UpdateInterestsRequest struct {
	Interests []string `json:"interests"`
}

func (r *UpdateInterestsRequest) Validate() error {
	if len(r.Interests) > MaxInterests {
		return apperr.BadRequest("at most 10 interests are allowed")
	}
	for _, name := range r.Interests {
		if strings.TrimSpace(name) == "" {
			return apperr.BadRequest("interest names must not be empty")
		}
	}
	return nil
}

type AddSlotRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Area      string `json:"area"`
}

func (r *AddSlotRequest) Validate() error {
	if r.Weekday < 0 || r.Weekday > 6 {
		return apperr.BadRequest("weekday must be between 0 and 6")
	}
	if strings.TrimSpace(r.Area) == "" {
		return apperr.BadRequest("area is required")
	}
	return nil
}
