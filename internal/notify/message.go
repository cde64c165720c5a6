package notify

import (
	"fmt"
	"strconv"

	"sosAlert/internal/domain"
)

const alertTitle = "SOS Alert"

func pushMessage(a domain.Alert) domain.PushMessage {
	return domain.PushMessage{
		Title: alertTitle,
		Body:  fmt.Sprintf("%s triggered an SOS.", nameOr(a.UserName, "Someone")),
		Data: map[string]string{
			"incidentId": a.IncidentID.String(),
			"lat":        formatCoord(a.Lat),
			"lon":        formatCoord(a.Lon),
		},
	}
}

func smsBody(a domain.Alert) string {
	return fmt.Sprintf("%s: %s needs help. Location: %s", alertTitle, nameOr(a.UserName, "User"), MapLink(a.Lat, a.Lon))
}

func MapLink(lat, lon float64) string {
	return "https://maps.google.com/?q=" + formatCoord(lat) + "," + formatCoord(lon)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nameOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:6] + "***"
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "***"
	}
	return "***" + phone[len(phone)-4:]
}
