package flow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/pg56714/line-dine-mapper/internal/favorites"
	"github.com/pg56714/line-dine-mapper/internal/restaurant"
	"github.com/pg56714/line-dine-mapper/internal/session"
)

// LINE template limits.
const (
	maxColumnTitle = 40
	maxColumnText  = 60
	maxAltText     = 400
)

func textMessages(text string) []messaging_api.MessageInterface {
	return []messaging_api.MessageInterface{
		messaging_api.TextMessage{Text: text},
	}
}

// commandMessages attaches the global-command quick replies, shown whenever
// the conversation is (re)startable.
func commandMessages(text string) []messaging_api.MessageInterface {
	return []messaging_api.MessageInterface{
		messaging_api.TextMessage{Text: text, QuickReply: commandQuickReply()},
	}
}

func greetingMessages() []messaging_api.MessageInterface {
	return commandMessages(msgGreeting)
}

func closingMessages() []messaging_api.MessageInterface {
	return commandMessages(msgClosing)
}

func commandQuickReply() *messaging_api.QuickReply {
	commands := []string{CmdStartSearch, CmdViewFavorites, CmdRandomFavorite}
	items := make([]messaging_api.QuickReplyItem, 0, len(commands))
	for _, c := range commands {
		items = append(items, messaging_api.QuickReplyItem{
			Action: messaging_api.MessageAction{Label: c, Text: c},
		})
	}
	return &messaging_api.QuickReply{Items: items}
}

// renderResultsPage renders the next page of search candidates and advances
// the cursor past it. Numbering is global across pages, so "5" always means
// the fifth-ranked restaurant no matter which page is on screen.
func renderResultsPage(s *session.Session) []messaging_api.MessageInterface {
	start := s.Cursor
	end := start + session.PageSize
	if end > len(s.Candidates) {
		end = len(s.Candidates)
	}

	columns := make([]messaging_api.CarouselColumn, 0, end-start)
	for i, r := range s.Candidates[start:end] {
		number := start + i + 1
		columns = append(columns, messaging_api.CarouselColumn{
			ThumbnailImageUrl: r.ImageURL,
			Title:             truncate(fmt.Sprintf("%d. %s", number, r.Name), maxColumnTitle),
			Text:              truncate(columnText(r), maxColumnText),
			Actions: []messaging_api.ActionInterface{
				messaging_api.MessageAction{Label: "查看細節", Text: strconv.Itoa(number)},
				messaging_api.UriAction{Label: "在地圖開啟", Uri: r.ListingURL},
			},
		})
	}
	s.Cursor = end

	followUp := msgMorePrompt
	if s.Cursor >= len(s.Candidates) {
		followUp = msgPickPrompt
	}
	return []messaging_api.MessageInterface{
		messaging_api.TemplateMessage{
			AltText: truncate(fmt.Sprintf("附近餐廳 %d-%d", start+1, end), maxAltText),
			Template: &messaging_api.CarouselTemplate{
				Columns: columns,
			},
		},
		messaging_api.TextMessage{Text: followUp},
	}
}

func columnText(r restaurant.Restaurant) string {
	rating := "暫無評分"
	if r.RatingCount > 0 {
		rating = fmt.Sprintf("⭐ %s（%d）", strconv.FormatFloat(r.Rating, 'f', 1, 64), r.RatingCount)
	}
	if r.Address == "" {
		return rating
	}
	return rating + "\n" + r.Address
}

// renderDetail renders the full detail view for one selected restaurant:
// a text block with ratings and opening hours, then an action menu.
func renderDetail(d restaurant.Details, placeID string) []messaging_api.MessageInterface {
	var b strings.Builder
	b.WriteString("🍽 " + d.Name + "\n")
	b.WriteString("📍 " + d.Address + "\n")
	if d.RatingCount > 0 {
		fmt.Fprintf(&b, "⭐ %s（%d 則評論）\n", strconv.FormatFloat(d.Rating, 'f', 1, 64), d.RatingCount)
	} else {
		b.WriteString("⭐ 暫無評分\n")
	}
	if len(d.WeekdayText) == 0 {
		b.WriteString("🕒 無營業時間資訊")
	} else {
		b.WriteString("🕒 營業時間：\n")
		b.WriteString(strings.Join(d.WeekdayText, "\n"))
	}

	return []messaging_api.MessageInterface{
		messaging_api.TextMessage{Text: b.String()},
		messaging_api.TemplateMessage{
			AltText: truncate(d.Name, maxAltText),
			Template: &messaging_api.ButtonsTemplate{
				Title: truncate(d.Name, maxColumnTitle),
				Text:  "想對這間餐廳做什麼呢？",
				Actions: []messaging_api.ActionInterface{
					messaging_api.UriAction{Label: "Google 導航", Uri: restaurant.DirectionsURL(d.Location)},
					messaging_api.UriAction{Label: "Uber 前往", Uri: restaurant.UberURL(d.Location, d.Name)},
					messaging_api.PostbackAction{
						Label:       "加入最愛",
						Data:        postbackData(actionAddToFavorites, placeID),
						DisplayText: "加入最愛",
					},
					messaging_api.MessageAction{Label: CmdEnd, Text: CmdEnd},
				},
			},
		},
	}
}

// renderFavoritesPage renders the next page of stored favorites and advances
// the favorites cursor past it.
func renderFavoritesPage(s *session.Session) []messaging_api.MessageInterface {
	start := s.FavCursor
	end := start + session.PageSize
	if end > len(s.Favorites) {
		end = len(s.Favorites)
	}

	columns := make([]messaging_api.CarouselColumn, 0, end-start)
	for _, f := range s.Favorites[start:end] {
		loc := restaurant.Coordinates{Lat: f.Latitude, Lng: f.Longitude}
		text := f.Address
		if text == "" {
			text = f.Name
		}
		columns = append(columns, messaging_api.CarouselColumn{
			Title: truncate(f.Name, maxColumnTitle),
			Text:  truncate(text, maxColumnText),
			Actions: []messaging_api.ActionInterface{
				messaging_api.UriAction{Label: "Google 導航", Uri: restaurant.DirectionsURL(loc)},
				messaging_api.PostbackAction{
					Label:       "刪除",
					Data:        postbackData(actionDelete, f.RestaurantID),
					DisplayText: "刪除收藏",
				},
			},
		})
	}
	s.FavCursor = end

	followUp := msgFavMorePrompt
	if s.FavCursor >= len(s.Favorites) {
		followUp = msgNoMoreFavs
	}
	return []messaging_api.MessageInterface{
		messaging_api.TemplateMessage{
			AltText: truncate(fmt.Sprintf("您的最愛 %d-%d", start+1, end), maxAltText),
			Template: &messaging_api.CarouselTemplate{
				Columns: columns,
			},
		},
		messaging_api.TextMessage{Text: followUp},
	}
}

// renderFavoriteDetail renders one randomly picked favorite from its stored
// snapshot; no provider round-trip is involved.
func renderFavoriteDetail(f favorites.Favorite) []messaging_api.MessageInterface {
	loc := restaurant.Coordinates{Lat: f.Latitude, Lng: f.Longitude}
	text := msgRandomPick + "\n🍽 " + f.Name
	if f.Address != "" {
		text += "\n📍 " + f.Address
	}
	return []messaging_api.MessageInterface{
		messaging_api.TextMessage{Text: text},
		messaging_api.TemplateMessage{
			AltText: truncate(f.Name, maxAltText),
			Template: &messaging_api.ButtonsTemplate{
				Title: truncate(f.Name, maxColumnTitle),
				Text:  "出發吧！",
				Actions: []messaging_api.ActionInterface{
					messaging_api.UriAction{Label: "Google 導航", Uri: restaurant.DirectionsURL(loc)},
					messaging_api.UriAction{Label: "Uber 前往", Uri: restaurant.UberURL(loc, f.Name)},
				},
			},
		},
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
