package notifier

import "github.com/quantamisecode-hub/groona-sub009/internal/models"

// ChannelsFor picks the delivery channels for one recipient. IN_APP applies
// unless the recipient switched it off; EMAIL applies only when the
// recipient allows it and the event explicitly declares it. An empty result
// is not an error, the recipient simply gets nothing.
func ChannelsFor(e Event, pref *models.NotificationPreference) []ChannelKind {
	var channels []ChannelKind

	if pref == nil || pref.InAppEnabled {
		channels = append(channels, ChannelInApp)
	}

	if (pref == nil || pref.EmailEnabled) && e.HasChannel(ChannelEmail) {
		channels = append(channels, ChannelEmail)
	}

	return channels
}
