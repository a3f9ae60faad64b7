package notifier

import (
	"fmt"
	"time"
)

// slackPayload is the generic text envelope Slack-compatible webhooks accept.
func slackPayload(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": fmt.Sprintf("A summarization job just completed:\n\n%s", text),
	}
}

// teamsPayload is an adaptive-card message: a titled header row, a date line
// with the local time-zone designation, and the summary in a bordered,
// scrollable container.
func teamsPayload(title, text string, now time.Time) map[string]interface{} {
	dateHeader := fmt.Sprintf("Date: %s %s",
		now.Format("01-02-2006 03:04:05 PM"),
		now.Format("MST"),
	)

	return map[string]interface{}{
		"type": "message",
		"attachments": []interface{}{
			map[string]interface{}{
				"contentType": "application/vnd.microsoft.card.adaptive",
				"contentUrl":  nil,
				"content": map[string]interface{}{
					"$schema": "http://adaptivecards.io/schemas/adaptive-card.json",
					"type":    "AdaptiveCard",
					"version": "1.5",
					"msteams": map[string]interface{}{
						"width": "Full",
					},
					"body": []interface{}{
						map[string]interface{}{
							"type": "ColumnSet",
							"columns": []interface{}{
								map[string]interface{}{
									"type": "Column",
									"items": []interface{}{
										map[string]interface{}{
											"type":  "Icon",
											"name":  "Flash",
											"size":  "Large",
											"style": "Filled",
											"color": "Accent",
										},
									},
									"width": "auto",
								},
								map[string]interface{}{
									"type":                     "Column",
									"spacing":                  "medium",
									"verticalContentAlignment": "center",
									"items": []interface{}{
										map[string]interface{}{
											"type":   "TextBlock",
											"wrap":   true,
											"style":  "heading",
											"weight": "Bolder",
											"size":   "Large",
											"text":   title,
										},
									},
									"width": "auto",
								},
							},
						},
						map[string]interface{}{
							"type":   "TextBlock",
							"wrap":   true,
							"style":  "heading",
							"weight": "Bolder",
							"size":   "Medium",
							"text":   dateHeader,
						},
						map[string]interface{}{
							"type":           "Container",
							"showBorder":     true,
							"roundedCorners": true,
							"maxHeight":      "400px",
							"items": []interface{}{
								map[string]interface{}{
									"type":     "TextBlock",
									"maxLines": 100,
									"wrap":     true,
									"text":     text,
								},
							},
						},
					},
				},
			},
		},
	}
}
