package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/pg56714/line-dine-mapper/internal/favorites"
	"github.com/pg56714/line-dine-mapper/internal/restaurant"
	"github.com/pg56714/line-dine-mapper/internal/session"
)

const testUser = "U4af4980629abcdef"

type fakePlaces struct {
	geocodeOK  bool
	results    []restaurant.Restaurant
	searchErr  error
	detailsErr error

	lastDetailID string
}

func (f *fakePlaces) Geocode(ctx context.Context, address string) (restaurant.Coordinates, bool) {
	if !f.geocodeOK {
		return restaurant.Coordinates{}, false
	}
	return restaurant.Coordinates{Lat: 25.04, Lng: 121.56}, true
}

func (f *fakePlaces) SearchNearby(ctx context.Context, loc restaurant.Coordinates, radiusMeters int) ([]restaurant.Restaurant, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakePlaces) Details(ctx context.Context, placeID string) (restaurant.Details, error) {
	f.lastDetailID = placeID
	if f.detailsErr != nil {
		return restaurant.Details{}, f.detailsErr
	}
	return restaurant.Details{
		Name:        "詳細-" + placeID,
		Address:     "台北市中山區測試路1號",
		Rating:      4.5,
		RatingCount: 321,
		WeekdayText: []string{"星期一: 11:00 – 21:00"},
		Location:    restaurant.Coordinates{Lat: 25.05, Lng: 121.55},
	}, nil
}

type fakeStore struct {
	favs      []favorites.Favorite
	listErr   error
	addErr    error
	deleteErr error
	existsErr error
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []favorites.Favorite
	for _, fav := range f.favs {
		if fav.LineUserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeStore) Add(ctx context.Context, fav favorites.Favorite) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.favs = append(f.favs, fav)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, userID, restaurantID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var kept []favorites.Favorite
	var affected int64
	for _, fav := range f.favs {
		if fav.LineUserID == userID && fav.RestaurantID == restaurantID {
			affected++
			continue
		}
		kept = append(kept, fav)
	}
	f.favs = kept
	return affected, nil
}

func (f *fakeStore) Exists(ctx context.Context, userID, restaurantID string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, fav := range f.favs {
		if fav.LineUserID == userID && fav.RestaurantID == restaurantID {
			return true, nil
		}
	}
	return false, nil
}

type fakeReplier struct {
	replies [][]messaging_api.MessageInterface
	pushes  [][]messaging_api.MessageInterface
	loading int
}

func (f *fakeReplier) Reply(ctx context.Context, replyToken string, msgs []messaging_api.MessageInterface) error {
	f.replies = append(f.replies, msgs)
	return nil
}

func (f *fakeReplier) Push(ctx context.Context, userID string, msgs []messaging_api.MessageInterface) error {
	f.pushes = append(f.pushes, msgs)
	return nil
}

func (f *fakeReplier) ShowLoading(ctx context.Context, userID string) error {
	f.loading++
	return nil
}

func (f *fakeReplier) lastReply() []messaging_api.MessageInterface {
	if len(f.replies) == 0 {
		return nil
	}
	return f.replies[len(f.replies)-1]
}

func (f *fakeReplier) lastPush() []messaging_api.MessageInterface {
	if len(f.pushes) == 0 {
		return nil
	}
	return f.pushes[len(f.pushes)-1]
}

func stubResults(n int) []restaurant.Restaurant {
	out := make([]restaurant.Restaurant, n)
	for i := range out {
		out[i] = restaurant.Restaurant{
			Name:        fmt.Sprintf("店家%d", i+1),
			Address:     fmt.Sprintf("台北市中山區測試路%d號", i+1),
			PlaceID:     fmt.Sprintf("place-%d", i+1),
			Rating:      4.0,
			RatingCount: 100 - i,
			Location:    restaurant.Coordinates{Lat: 25.0, Lng: 121.5},
		}
	}
	return out
}

func stubFavorites(n int) []favorites.Favorite {
	out := make([]favorites.Favorite, n)
	for i := range out {
		out[i] = favorites.Favorite{
			ID:           int64(i + 1),
			LineUserID:   testUser,
			RestaurantID: fmt.Sprintf("place-%d", i+1),
			Name:         fmt.Sprintf("最愛%d", i+1),
			Address:      fmt.Sprintf("台北市大安區收藏路%d號", i+1),
			Latitude:     25.0,
			Longitude:    121.5,
		}
	}
	return out
}

func newTestOrchestrator(p *fakePlaces, st *fakeStore) (*Orchestrator, *session.Manager, *fakeReplier) {
	mgr := session.NewManager()
	rep := &fakeReplier{}
	o := New(mgr, p, st, rep)
	return o, mgr, rep
}

func textEvent(text string) Event {
	return Event{Kind: KindText, UserID: testUser, ReplyToken: "rt", Text: text}
}

func postbackEvent(data string) Event {
	return Event{Kind: KindPostback, UserID: testUser, ReplyToken: "rt", PostbackData: data}
}

func send(t *testing.T, o *Orchestrator, ev Event) {
	t.Helper()
	if err := o.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent(%v): %v", ev.Kind, err)
	}
}

func firstText(t *testing.T, msgs []messaging_api.MessageInterface) string {
	t.Helper()
	for _, m := range msgs {
		if tm, ok := m.(messaging_api.TextMessage); ok {
			return tm.Text
		}
	}
	t.Fatal("no text message in batch")
	return ""
}

func lastText(t *testing.T, msgs []messaging_api.MessageInterface) string {
	t.Helper()
	for i := len(msgs) - 1; i >= 0; i-- {
		if tm, ok := msgs[i].(messaging_api.TextMessage); ok {
			return tm.Text
		}
	}
	t.Fatal("no text message in batch")
	return ""
}

func carousel(t *testing.T, msgs []messaging_api.MessageInterface) *messaging_api.CarouselTemplate {
	t.Helper()
	for _, m := range msgs {
		if tm, ok := m.(messaging_api.TemplateMessage); ok {
			if c, ok := tm.Template.(*messaging_api.CarouselTemplate); ok {
				return c
			}
		}
	}
	t.Fatal("no carousel in batch")
	return nil
}

// driveToBrowsing walks a fresh session through the whole collection phase.
func driveToBrowsing(t *testing.T, o *Orchestrator, topCount string) {
	t.Helper()
	send(t, o, textEvent(CmdStartSearch))
	send(t, o, textEvent("台北車站"))
	send(t, o, textEvent(topCount))
	send(t, o, textEvent("500 公尺"))
}

func TestSearchFlowCollectsParametersInOrder(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})

	send(t, o, textEvent(CmdStartSearch))
	if got := firstText(t, rep.lastReply()); got != msgAskLocation {
		t.Fatalf("start reply = %q, want location prompt", got)
	}

	send(t, o, textEvent("台北車站"))
	if got := firstText(t, rep.lastReply()); got != msgAskTopCount {
		t.Fatalf("after address = %q, want count prompt", got)
	}

	send(t, o, textEvent("前6間"))
	if got := firstText(t, rep.lastReply()); got != msgAskRadius {
		t.Fatalf("after count = %q, want radius prompt", got)
	}

	send(t, o, textEvent("500 公尺"))
	s := mgr.Snapshot(testUser)
	if s.Stage != session.StageBrowsingResults {
		t.Fatalf("stage = %v, want browsing", s.Stage)
	}
	if s.TopCount != 6 || s.Radius != 500 {
		t.Fatalf("params = (%d, %d), want (6, 500)", s.TopCount, s.Radius)
	}
	if s.Cursor != session.PageSize {
		t.Fatalf("cursor = %d, want %d", s.Cursor, session.PageSize)
	}
	if got := len(carousel(t, rep.lastReply()).Columns); got != session.PageSize {
		t.Fatalf("first page columns = %d, want %d", got, session.PageSize)
	}
	if got := lastText(t, rep.lastReply()); got != msgMorePrompt {
		t.Fatalf("follow-up = %q, want more prompt", got)
	}
}

func TestSearchPaginationIsExactlyOnce(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	// topCount above the result size means no truncation.
	driveToBrowsing(t, o, "10")

	send(t, o, textEvent(CmdContinue))
	c := carousel(t, rep.lastReply())
	if len(c.Columns) != 2 {
		t.Fatalf("second page columns = %d, want 2", len(c.Columns))
	}
	if !strings.HasPrefix(c.Columns[0].Title, "5. ") {
		t.Fatalf("second page starts at %q, want global number 5", c.Columns[0].Title)
	}
	if got := lastText(t, rep.lastReply()); got != msgPickPrompt {
		t.Fatalf("terminal follow-up = %q, want pick prompt", got)
	}

	send(t, o, textEvent(CmdContinue))
	if got := firstText(t, rep.lastReply()); got != msgNoMoreResults {
		t.Fatalf("past-end continue = %q, want no-more message", got)
	}
	if s := mgr.Snapshot(testUser); s.Stage != session.StageBrowsingResults {
		t.Fatalf("stage after exhausted continue = %v, want browsing", s.Stage)
	}
}

func TestSearchTruncatesToTopCount(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, mgr, _ := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "2")

	s := mgr.Snapshot(testUser)
	if len(s.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(s.Candidates))
	}
	if s.Cursor != 2 {
		t.Fatalf("cursor = %d, want 2", s.Cursor)
	}
}

func TestGeocodeMissKeepsStage(t *testing.T) {
	p := &fakePlaces{geocodeOK: false}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})

	send(t, o, textEvent(CmdStartSearch))
	send(t, o, textEvent("不存在的地方"))
	if got := firstText(t, rep.lastReply()); got != msgGeocodeMiss {
		t.Fatalf("reply = %q, want geocode miss", got)
	}
	if s := mgr.Snapshot(testUser); s.Stage != session.StageAwaitingLocation {
		t.Fatalf("stage = %v, want awaiting location", s.Stage)
	}
}

func TestProviderErrorKeepsStage(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, searchErr: errors.New("quota")}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "6")

	if got := firstText(t, rep.lastReply()); got != msgProviderError {
		t.Fatalf("reply = %q, want provider error", got)
	}
	if s := mgr.Snapshot(testUser); s.Stage != session.StageAwaitingRadius {
		t.Fatalf("stage = %v, want awaiting radius", s.Stage)
	}
}

func TestEmptyResultsRepromptsRadius(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: nil}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "6")

	if got := firstText(t, rep.lastReply()); got != msgNoResults {
		t.Fatalf("reply = %q, want empty-results message", got)
	}
	if s := mgr.Snapshot(testUser); s.Stage != session.StageAwaitingRadius {
		t.Fatalf("stage = %v, want awaiting radius", s.Stage)
	}
}

func TestSelectionOutOfRangeReprompts(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "6")

	send(t, o, textEvent("7"))
	want := fmt.Sprintf(msgBadSelection, 6)
	if got := firstText(t, rep.lastReply()); got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
	if s := mgr.Snapshot(testUser); s.LastSelected != nil {
		t.Fatal("out-of-range selection must not set a selection")
	}
}

func TestSelectionFetchesDetails(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "6")

	send(t, o, textEvent("2"))
	if p.lastDetailID != "place-2" {
		t.Fatalf("details fetched for %q, want place-2", p.lastDetailID)
	}
	s := mgr.Snapshot(testUser)
	if s.LastSelected == nil || s.LastSelected.PlaceID != "place-2" {
		t.Fatalf("LastSelected = %+v, want place-2", s.LastSelected)
	}
	if got := firstText(t, rep.lastReply()); !strings.Contains(got, "詳細-place-2") {
		t.Fatalf("detail reply = %q, want detail text", got)
	}
}

func TestRandomSelectionUsesFullCandidateSet(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, _, _ := newTestOrchestrator(p, &fakeStore{})

	var gotN int
	o.intn = func(n int) int {
		gotN = n
		return 5
	}
	driveToBrowsing(t, o, "6")
	send(t, o, textEvent(CmdRandom))

	if gotN != 6 {
		t.Fatalf("random drew from %d candidates, want 6 regardless of cursor", gotN)
	}
	if p.lastDetailID != "place-6" {
		t.Fatalf("details fetched for %q, want place-6", p.lastDetailID)
	}
}

func TestDetailErrorKeepsBrowsing(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6), detailsErr: errors.New("quota")}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "6")

	send(t, o, textEvent("1"))
	if got := firstText(t, rep.lastReply()); got != msgProviderError {
		t.Fatalf("reply = %q, want provider error", got)
	}
	s := mgr.Snapshot(testUser)
	if s.Stage != session.StageBrowsingResults || s.LastSelected != nil {
		t.Fatalf("session after detail failure = (%v, %+v), want browsing with no selection", s.Stage, s.LastSelected)
	}
}

func TestLocationMessageSkipsGeocoding(t *testing.T) {
	p := &fakePlaces{geocodeOK: false}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})

	send(t, o, textEvent(CmdStartSearch))
	send(t, o, Event{
		Kind:       KindLocation,
		UserID:     testUser,
		ReplyToken: "rt",
		Location:   restaurant.Coordinates{Lat: 25.03, Lng: 121.52},
	})

	if got := firstText(t, rep.lastReply()); got != msgAskTopCount {
		t.Fatalf("reply = %q, want count prompt", got)
	}
	s := mgr.Snapshot(testUser)
	if s.Location == nil || s.Location.Lat != 25.03 {
		t.Fatalf("location = %+v, want shared coordinates", s.Location)
	}
}

func TestEndCommandAndRestart(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	o, mgr, rep := newTestOrchestrator(p, &fakeStore{})
	driveToBrowsing(t, o, "6")

	send(t, o, textEvent(CmdEnd))
	if got := firstText(t, rep.lastReply()); got != msgClosing {
		t.Fatalf("end reply = %q, want closing", got)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("session not ended")
	}

	// Plain text after end only repeats the closing quick actions.
	send(t, o, textEvent("3"))
	if got := firstText(t, rep.lastReply()); got != msgClosing {
		t.Fatalf("post-end input reply = %q, want closing", got)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("post-end input revived the session")
	}

	// Global commands revive an ended session.
	send(t, o, textEvent(CmdStartSearch))
	s := mgr.Snapshot(testUser)
	if s.Stage != session.StageAwaitingLocation || s.Flow != session.FlowSearch {
		t.Fatalf("restart = (%v, %v), want fresh search", s.Stage, s.Flow)
	}
	if len(s.Candidates) != 0 || s.LastSelected != nil {
		t.Fatal("restart kept stale search state")
	}
}

func TestFavoritesEmptyEndsImmediately(t *testing.T) {
	o, mgr, rep := newTestOrchestrator(&fakePlaces{}, &fakeStore{})

	send(t, o, textEvent(CmdViewFavorites))
	if got := firstText(t, rep.lastReply()); got != msgNoFavorites {
		t.Fatalf("reply = %q, want no-favorites message", got)
	}
	if len(rep.replies) != 1 {
		t.Fatalf("replies = %d, want exactly one", len(rep.replies))
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("empty favorites must end the session")
	}
}

func TestFavoritesPagingAutoEnds(t *testing.T) {
	st := &fakeStore{favs: stubFavorites(5)}
	o, mgr, rep := newTestOrchestrator(&fakePlaces{}, st)

	send(t, o, textEvent(CmdViewFavorites))
	if got := len(carousel(t, rep.lastReply()).Columns); got != session.PageSize {
		t.Fatalf("first page columns = %d, want %d", got, session.PageSize)
	}
	if got := lastText(t, rep.lastReply()); got != msgFavMorePrompt {
		t.Fatalf("follow-up = %q, want continue prompt", got)
	}

	send(t, o, textEvent(CmdContinue))
	if got := len(carousel(t, rep.lastReply()).Columns); got != 1 {
		t.Fatalf("last page columns = %d, want 1", got)
	}
	if got := lastText(t, rep.lastReply()); got != msgNoMoreFavs {
		t.Fatalf("follow-up = %q, want end-of-list message", got)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("exhausted favorites paging must end the session")
	}
}

func TestRandomFavoriteUsesStoredSnapshot(t *testing.T) {
	st := &fakeStore{favs: stubFavorites(3)}
	o, mgr, rep := newTestOrchestrator(&fakePlaces{}, st)
	o.intn = func(n int) int {
		if n != 3 {
			t.Fatalf("random drew from %d favorites, want 3", n)
		}
		return 1
	}

	send(t, o, textEvent(CmdRandomFavorite))
	if got := firstText(t, rep.lastReply()); !strings.Contains(got, "最愛2") {
		t.Fatalf("reply = %q, want pick of second favorite", got)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("random favorite must end the session")
	}
}

func TestRandomFavoriteEmpty(t *testing.T) {
	o, mgr, rep := newTestOrchestrator(&fakePlaces{}, &fakeStore{})

	send(t, o, textEvent(CmdRandomFavorite))
	if got := firstText(t, rep.lastReply()); got != msgNoFavorites {
		t.Fatalf("reply = %q, want no-favorites message", got)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("session must end")
	}
}

func TestAddFavoriteOnceThenDuplicate(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	st := &fakeStore{}
	o, mgr, rep := newTestOrchestrator(p, st)

	driveToBrowsing(t, o, "6")
	send(t, o, textEvent("1"))
	send(t, o, postbackEvent(postbackData(actionAddToFavorites, "place-1")))

	if rep.loading != 1 {
		t.Fatalf("loading animations = %d, want 1", rep.loading)
	}
	if got := firstText(t, rep.lastReply()); got != msgFavProcessing {
		t.Fatalf("ack reply = %q, want processing", got)
	}
	if got := firstText(t, rep.lastPush()); got != msgFavAdded {
		t.Fatalf("confirmation push = %q, want added", got)
	}
	if len(st.favs) != 1 || st.favs[0].RestaurantID != "place-1" {
		t.Fatalf("store = %+v, want one record for place-1", st.favs)
	}
	if got := st.favs[0]; got.Name != "店家1" || got.Latitude != 25.0 {
		t.Fatalf("stored snapshot = %+v, want fields copied from the result", got)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("successful add must end the session")
	}

	// Same place again through a fresh search.
	driveToBrowsing(t, o, "6")
	send(t, o, textEvent("1"))
	send(t, o, postbackEvent(postbackData(actionAddToFavorites, "place-1")))

	if got := firstText(t, rep.lastPush()); got != msgFavExists {
		t.Fatalf("duplicate push = %q, want already-saved message", got)
	}
	if len(st.favs) != 1 {
		t.Fatalf("store = %d records, want still 1", len(st.favs))
	}
}

func TestAddFavoriteWithoutSelectionIsRejected(t *testing.T) {
	st := &fakeStore{}
	o, _, rep := newTestOrchestrator(&fakePlaces{}, st)

	send(t, o, postbackEvent(postbackData(actionAddToFavorites, "place-1")))
	if got := firstText(t, rep.lastReply()); got != msgNothingToDo {
		t.Fatalf("reply = %q, want nothing-to-do", got)
	}
	if len(st.favs) != 0 {
		t.Fatal("nothing may be stored without a live selection")
	}
}

func TestAddFavoritePersistErrorKeepsSession(t *testing.T) {
	p := &fakePlaces{geocodeOK: true, results: stubResults(6)}
	st := &fakeStore{addErr: errors.New("connection refused")}
	o, mgr, rep := newTestOrchestrator(p, st)

	driveToBrowsing(t, o, "6")
	send(t, o, textEvent("1"))
	send(t, o, postbackEvent(postbackData(actionAddToFavorites, "place-1")))

	if got := firstText(t, rep.lastPush()); got != msgPersistError {
		t.Fatalf("push = %q, want persistence error", got)
	}
	if s := mgr.Snapshot(testUser); s.Stage != session.StageBrowsingResults {
		t.Fatalf("stage = %v, failed add must not end the session", s.Stage)
	}
}

func TestDeleteFavorite(t *testing.T) {
	st := &fakeStore{favs: stubFavorites(2)}
	o, mgr, rep := newTestOrchestrator(&fakePlaces{}, st)

	send(t, o, textEvent(CmdViewFavorites))
	send(t, o, postbackEvent(postbackData(actionDelete, "place-2")))

	if got := firstText(t, rep.lastReply()); got != msgFavDeleted {
		t.Fatalf("reply = %q, want deleted", got)
	}
	if len(st.favs) != 1 || st.favs[0].RestaurantID != "place-1" {
		t.Fatalf("store = %+v, want only place-1 left", st.favs)
	}
	if s := mgr.Snapshot(testUser); !s.Ended() {
		t.Fatal("delete must end the session")
	}
}

func TestDeleteMissingFavorite(t *testing.T) {
	st := &fakeStore{}
	o, _, rep := newTestOrchestrator(&fakePlaces{}, st)

	send(t, o, postbackEvent(postbackData(actionDelete, "place-404")))
	if got := firstText(t, rep.lastReply()); got != msgFavDeleteMiss {
		t.Fatalf("reply = %q, want delete-miss message", got)
	}
}

func TestFollowGreets(t *testing.T) {
	o, _, rep := newTestOrchestrator(&fakePlaces{}, &fakeStore{})

	send(t, o, Event{Kind: KindFollow, UserID: testUser, ReplyToken: "rt"})
	msgs := rep.lastReply()
	if got := firstText(t, msgs); got != msgGreeting {
		t.Fatalf("reply = %q, want greeting", got)
	}
	tm, ok := msgs[0].(messaging_api.TextMessage)
	if !ok || tm.QuickReply == nil || len(tm.QuickReply.Items) != 3 {
		t.Fatal("greeting must carry the three command quick replies")
	}
}
