package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/config"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvent(t *testing.T) {
	loc := time.FixedZone("America/Maceio", -3*60*60)
	notes := "levar bolas"
	entry := &model.ScheduleEntry{
		Type:          model.ScheduleParty,
		Date:          time.Date(2024, time.July, 6, 0, 0, 0, 0, loc),
		Time:          "14:30",
		DurationHours: 2.5,
		Location:      "Buffet Alegria",
		Description:   "Aniversario do Lucas",
		Notes:         &notes,
	}

	ev, err := buildEvent(entry, loc)
	require.NoError(t, err)
	assert.Equal(t, "FESTA - Aniversario do Lucas", ev.Summary)
	assert.Equal(t, "Buffet Alegria", ev.Location)
	assert.Equal(t, "levar bolas", ev.Description)
	assert.Equal(t, "2024-07-06T14:30:00-03:00", ev.Start.DateTime)
	assert.Equal(t, "2024-07-06T17:00:00-03:00", ev.End.DateTime)
	assert.Equal(t, "America/Maceio", ev.Start.TimeZone)
	assert.Equal(t, "4", ev.ColorId)
}

func TestBuildEventRejectsBadTime(t *testing.T) {
	_, err := buildEvent(&model.ScheduleEntry{Type: model.ScheduleEvent, Time: "25h"}, time.UTC)
	assert.Error(t, err)
}

func TestAuthURLRequestsOfflineAccess(t *testing.T) {
	url := AuthURL(&config.GoogleCredentials{ClientID: "cid", RedirectURI: "http://localhost:3000/oauth2callback"})
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "client_id=cid")
}

func TestDisabledIsNoop(t *testing.T) {
	var d Disabled
	id, err := d.CreateEvent(context.Background(), &model.ScheduleEntry{})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, d.DeleteEvent(context.Background(), "x"))
}
