package integration_tests

import (
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/wallcal/wallcal.go/lib/service"
)

type eventBody struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Details  string `json:"details"`
	Username string `json:"username"`
}

type EventsTestSuite struct {
	suite.Suite
	svc  *service.WallcalService
	echo *echo.Echo
}

func (suite *EventsTestSuite) SetupTest() {
	svc, err := WallcalTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.svc = svc
	suite.echo = NewTestEcho(svc)
}

func (suite *EventsTestSuite) registerAlice() {
	_, status, err := registerUser(suite.echo, aliceAddr, "alice")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, status)
}

func (suite *EventsTestSuite) createEvent(addr, date, title string) (eventBody, int) {
	var event eventBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPost,
		path:   "/api/events",
		addr:   addr,
		body:   map[string]string{"date": date, "title": title},
	}, &event)
	assert.NoError(suite.T(), err)
	return event, rec.Code
}

func (suite *EventsTestSuite) listEvents(addr string) []eventBody {
	var events []eventBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodGet,
		path:   "/api/events",
		addr:   addr,
	}, &events)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	return events
}

func (suite *EventsTestSuite) TestUnregisteredCallerRejected() {
	var errResp errorBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPost,
		path:   "/api/events",
		addr:   bobAddr,
		body:   map[string]string{"date": "2024-01-01", "title": "Meeting"},
	}, &errResp)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "AUTH_REQUIRED", errResp.Code)
}

func (suite *EventsTestSuite) TestCreateCarriesOwnerName() {
	suite.registerAlice()

	event, status := suite.createEvent(aliceAddr, "2024-01-01", "Meeting")
	assert.Equal(suite.T(), http.StatusCreated, status)
	assert.Equal(suite.T(), "alice", event.Username)
	assert.Equal(suite.T(), "Meeting", event.Title)
	assert.Equal(suite.T(), "", event.Details)
}

func (suite *EventsTestSuite) TestNonStringDetailsTreatedAsAbsent() {
	suite.registerAlice()

	var event eventBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPost,
		path:   "/api/events",
		addr:   aliceAddr,
		body:   map[string]interface{}{"date": "2024-01-01", "title": "Meeting", "details": 42},
	}, &event)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.Equal(suite.T(), "", event.Details)
}

func (suite *EventsTestSuite) TestCreateRequiresDateAndTitle() {
	suite.registerAlice()

	for _, body := range []map[string]string{
		{"title": "no date"},
		{"date": "2024-01-01"},
		{"date": "   ", "title": "blank date"},
		{"date": "2024-01-01", "title": "   "},
	} {
		var errResp errorBody
		rec, err := doRequest(suite.echo, apiRequest{
			method: http.MethodPost,
			path:   "/api/events",
			addr:   aliceAddr,
			body:   body,
		}, &errResp)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
		assert.Equal(suite.T(), "INVALID_EVENT", errResp.Code)
	}
}

func (suite *EventsTestSuite) TestListOrderedByDateThenId() {
	suite.registerAlice()

	suite.createEvent(aliceAddr, "2024-02-01", "second day")
	suite.createEvent(aliceAddr, "2024-01-01", "first day, later insert")
	suite.createEvent(aliceAddr, "2024-01-01", "first day, latest insert")

	events := suite.listEvents(aliceAddr)
	assert.Len(suite.T(), events, 3)
	assert.Equal(suite.T(), "first day, later insert", events[0].Title)
	assert.Equal(suite.T(), "first day, latest insert", events[1].Title)
	assert.Equal(suite.T(), "second day", events[2].Title)
	assert.Less(suite.T(), events[0].ID, events[1].ID)
}

func (suite *EventsTestSuite) TestUpdateKeepsIdAndOwner() {
	suite.registerAlice()
	created, _ := suite.createEvent(aliceAddr, "2024-01-01", "Meeting")

	var updated eventBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPut,
		path:   "/api/events/1",
		addr:   aliceAddr,
		body:   map[string]string{"date": "2024-01-02", "title": "Moved meeting", "details": "room 2"},
	}, &updated)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), created.ID, updated.ID)
	assert.Equal(suite.T(), created.UserID, updated.UserID)
	assert.Equal(suite.T(), "Moved meeting", updated.Title)
	assert.Equal(suite.T(), "room 2", updated.Details)
}

func (suite *EventsTestSuite) TestInvalidEventIdRejectedBeforeStore() {
	suite.registerAlice()

	for _, path := range []string{"/api/events/abc", "/api/events/0", "/api/events/-3"} {
		var errResp errorBody
		rec, err := doRequest(suite.echo, apiRequest{
			method: http.MethodDelete,
			path:   path,
			addr:   aliceAddr,
		}, &errResp)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
		assert.Equal(suite.T(), "INVALID_EVENT_ID", errResp.Code)
	}
}

func (suite *EventsTestSuite) TestMutatingMissingEventNotFound() {
	suite.registerAlice()

	var errResp errorBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPut,
		path:   "/api/events/99",
		addr:   aliceAddr,
		body:   map[string]string{"date": "2024-01-01", "title": "ghost"},
	}, &errResp)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "EVENT_NOT_FOUND", errResp.Code)
}

func (suite *EventsTestSuite) TestNonOwnerCannotMutate() {
	suite.registerAlice()
	created, _ := suite.createEvent(aliceAddr, "2024-01-01", "Meeting")

	_, status, err := registerUser(suite.echo, bobAddr, "bob")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, status)

	var errResp errorBody
	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPut,
		path:   "/api/events/1",
		addr:   bobAddr,
		body:   map[string]string{"date": "2024-12-24", "title": "hijacked"},
	}, &errResp)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "EVENT_ACCESS_DENIED", errResp.Code)

	rec, err = doRequest(suite.echo, apiRequest{
		method: http.MethodDelete,
		path:   "/api/events/1",
		addr:   bobAddr,
	}, &errResp)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "EVENT_ACCESS_DENIED", errResp.Code)

	// the stored row is unchanged
	events := suite.listEvents(aliceAddr)
	assert.Len(suite.T(), events, 1)
	assert.Equal(suite.T(), created.Title, events[0].Title)
	assert.Equal(suite.T(), created.Date, events[0].Date)
}

func (suite *EventsTestSuite) TestMutationsNotifySubscribers() {
	suite.registerAlice()
	subId, msgChan := suite.svc.EventPubSub.Subscribe()
	defer suite.svc.EventPubSub.Unsubscribe(subId)

	suite.createEvent(aliceAddr, "2024-01-01", "Meeting")
	msg := <-msgChan
	assert.Equal(suite.T(), service.EventTypeCreated, msg.Type)
	created, ok := msg.Data.(*service.EventWithOwner)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "alice", created.Username)

	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodPut,
		path:   "/api/events/1",
		addr:   aliceAddr,
		body:   map[string]string{"date": "2024-01-02", "title": "Moved"},
	}, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	msg = <-msgChan
	assert.Equal(suite.T(), service.EventTypeUpdated, msg.Type)

	rec, err = doRequest(suite.echo, apiRequest{
		method: http.MethodDelete,
		path:   "/api/events/1",
		addr:   aliceAddr,
	}, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	msg = <-msgChan
	assert.Equal(suite.T(), service.EventTypeDeleted, msg.Type)
	deleted, ok := msg.Data.(map[string]int64)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), int64(1), deleted["id"])

	// exactly one notification per mutation
	assert.Empty(suite.T(), msgChan)
}

func (suite *EventsTestSuite) TestFailedMutationDoesNotBroadcast() {
	suite.registerAlice()
	subId, msgChan := suite.svc.EventPubSub.Subscribe()
	defer suite.svc.EventPubSub.Unsubscribe(subId)

	_, status := suite.createEvent(aliceAddr, "", "no date")
	assert.Equal(suite.T(), http.StatusBadRequest, status)

	rec, err := doRequest(suite.echo, apiRequest{
		method: http.MethodDelete,
		path:   "/api/events/42",
		addr:   aliceAddr,
	}, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	assert.Empty(suite.T(), msgChan)
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsTestSuite))
}
