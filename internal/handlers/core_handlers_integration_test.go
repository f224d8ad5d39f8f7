package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dvcruz/progtrack/internal/handlers/testutil"
	"github.com/dvcruz/progtrack/internal/models"
)

func seededCollegeID(t *testing.T, env *testutil.Env) string {
	t.Helper()
	var college models.College
	require.NoError(t, env.DB.First(&college).Error)
	return college.ID
}

func TestHealthEndpoint(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthHandler_LoginMeLogout(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser("Passw0rd!long")

	// unauthenticated request should fail
	unauth := env.Request(http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, unauth.Code)

	wrong := env.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    user.Email,
		"password": "not-the-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, wrong.Code)

	login := env.Login(user.Email, "Passw0rd!long")
	require.Equal(t, user.ID, login.User.ID)

	me := env.Request(http.MethodGet, "/api/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, me.Code)
	mePayload := testutil.DecodeResponse(t, me)
	var current testutil.UserPayload
	testutil.DecodeInto(t, mePayload.Data, &current)
	require.Equal(t, user.Email, current.Email)

	logout := env.Request(http.MethodPost, "/api/auth/logout", nil, login.Token)
	require.Equal(t, http.StatusOK, logout.Code)
}

func TestUserHandler_AdminOnlyCRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	regular := env.CreateUser("UserPassw0rd!")

	userToken := env.Login(regular.Email, "UserPassw0rd!").Token
	forbidden := env.Request(http.MethodGet, "/api/users", nil, userToken)
	require.Equal(t, http.StatusForbidden, forbidden.Code)

	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token

	list := env.Request(http.MethodGet, "/api/users", nil, adminToken)
	require.Equal(t, http.StatusOK, list.Code)
	listPayload := testutil.DecodeResponse(t, list)
	require.True(t, listPayload.Success)
	require.NotNil(t, listPayload.Meta)
	require.GreaterOrEqual(t, listPayload.Meta.Total, 3)

	created := env.Request(http.MethodPost, "/api/users", map[string]any{
		"first_name": "Lerma",
		"last_name":  "Dios",
		"email":      "lerma.dios@example.com",
		"password":   "Password123!",
	}, adminToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var newUser testutil.UserPayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &newUser)
	require.NotEmpty(t, newUser.ID)
	require.Equal(t, models.RoleUser, newUser.Role)

	promoted := env.Request(http.MethodPut, "/api/users/"+newUser.ID, map[string]any{
		"role": "admin",
	}, adminToken)
	require.Equal(t, http.StatusOK, promoted.Code, promoted.Body.String())
	var updated testutil.UserPayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, promoted).Data, &updated)
	require.Equal(t, models.RoleAdmin, updated.Role)

	deleted := env.Request(http.MethodDelete, "/api/users/"+newUser.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, deleted.Code)

	gone := env.Request(http.MethodGet, "/api/users/"+newUser.ID, nil, adminToken)
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestSubmissionHandler_LifecycleWithReview(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	owner := env.CreateUser("OwnerPassw0rd!")
	stranger := env.CreateUser("OtherPassw0rd!")
	collegeID := seededCollegeID(t, env)

	ownerToken := env.Login(owner.Email, "OwnerPassw0rd!").Token
	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token
	strangerToken := env.Login(stranger.Email, "OtherPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/tech-transfer", map[string]any{
		"name":        "Solar Dryer Fabrication",
		"description": "Low-cost solar dryer for smallholder farms",
		"category":    "agriculture",
		"purpose":     "commercialization",
		"start_date":  time.Now().UTC().Format(time.RFC3339),
		"end_date":    time.Now().UTC().AddDate(1, 0, 0).Format(time.RFC3339),
		"college_id":  collegeID,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var submission models.TechTransfer
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &submission)
	require.Equal(t, models.StatusPending, submission.Status)
	require.Equal(t, owner.ID, submission.OwnerID)

	// Pending submissions are invisible to other users in the general view.
	hidden := env.Request(http.MethodGet, "/api/tech-transfer/"+submission.ID, nil, strangerToken)
	require.Equal(t, http.StatusNotFound, hidden.Code)

	// The owner always sees their own submission.
	own := env.Request(http.MethodGet, "/api/tech-transfer/"+submission.ID, nil, ownerToken)
	require.Equal(t, http.StatusOK, own.Code)

	// A regular user cannot decide reviews.
	denied := env.Request(http.MethodPost, "/api/review/tech-transfer/"+submission.ID, map[string]any{
		"status": "approved",
	}, ownerToken)
	require.Equal(t, http.StatusForbidden, denied.Code)

	approve := env.Request(http.MethodPost, "/api/review/tech-transfer/"+submission.ID, map[string]any{
		"status": "approved",
	}, adminToken)
	require.Equal(t, http.StatusOK, approve.Code, approve.Body.String())

	// Approval never widens detail access; other users still get a 404.
	stillHidden := env.Request(http.MethodGet, "/api/tech-transfer/"+submission.ID, nil, strangerToken)
	require.Equal(t, http.StatusNotFound, stillHidden.Code)

	// The owner and admins keep full access after the decision.
	own = env.Request(http.MethodGet, "/api/tech-transfer/"+submission.ID, nil, ownerToken)
	require.Equal(t, http.StatusOK, own.Code)

	// Once decided, the submission leaves the pending state.
	again := env.Request(http.MethodPost, "/api/review/tech-transfer/"+submission.ID, map[string]any{
		"status": "rejected",
	}, adminToken)
	require.Equal(t, http.StatusUnprocessableEntity, again.Code, again.Body.String())
}

func TestSubmissionHandler_ArchiveRequiresPassword(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser("OwnerPassw0rd!")
	collegeID := seededCollegeID(t, env)
	ownerToken := env.Login(owner.Email, "OwnerPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/award", map[string]any{
		"award_name":    "Best Extension Program",
		"awarding_body": "Regional Science Council",
		"college_id":    collegeID,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var award models.Award
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &award)

	wrong := env.Request(http.MethodPost, "/api/award/"+award.ID+"/archive", map[string]any{
		"password": "not-it",
	}, ownerToken)
	require.Equal(t, http.StatusForbidden, wrong.Code)

	archived := env.Request(http.MethodPost, "/api/award/"+award.ID+"/archive", map[string]any{
		"password": "OwnerPassw0rd!",
	}, ownerToken)
	require.Equal(t, http.StatusOK, archived.Code, archived.Body.String())

	// Archived submissions vanish from reads, including the owner's.
	gone := env.Request(http.MethodGet, "/api/award/"+award.ID, nil, ownerToken)
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestSubmissionHandler_DeleteIsAdminOnly(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	owner := env.CreateUser("OwnerPassw0rd!")
	collegeID := seededCollegeID(t, env)

	ownerToken := env.Login(owner.Email, "OwnerPassw0rd!").Token
	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/award", map[string]any{
		"award_name":    "Outstanding Extension Worker",
		"awarding_body": "National Science Council",
		"college_id":    collegeID,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var award models.Award
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &award)

	denied := env.Request(http.MethodDelete, "/api/award/"+award.ID, nil, ownerToken)
	require.Equal(t, http.StatusForbidden, denied.Code)

	deleted := env.Request(http.MethodDelete, "/api/award/"+award.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, deleted.Code, deleted.Body.String())
}

func TestCampusCollegeHandlers_DirectoryCRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	regular := env.CreateUser("UserPassw0rd!")

	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token
	userToken := env.Login(regular.Email, "UserPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/campuses", map[string]any{
		"name":     "South Campus",
		"location": "Puerto Princesa",
	}, adminToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var campus models.Campus
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &campus)

	college := env.Request(http.MethodPost, "/api/colleges", map[string]any{
		"name":      "College of Fisheries",
		"code":      "cof",
		"campus_id": campus.ID,
	}, adminToken)
	require.Equal(t, http.StatusCreated, college.Code, college.Body.String())
	var newCollege models.College
	testutil.DecodeInto(t, testutil.DecodeResponse(t, college).Data, &newCollege)
	require.Equal(t, "COF", newCollege.Code)

	// Directory reads are open to every authenticated user.
	list := env.Request(http.MethodGet, "/api/campuses", nil, userToken)
	require.Equal(t, http.StatusOK, list.Code)

	// Writes are not.
	denied := env.Request(http.MethodPost, "/api/campuses", map[string]any{
		"name": "Rogue Campus",
	}, userToken)
	require.Equal(t, http.StatusForbidden, denied.Code)

	// A campus with colleges attached cannot be removed.
	blocked := env.Request(http.MethodDelete, "/api/campuses/"+campus.ID, nil, adminToken)
	require.Equal(t, http.StatusBadRequest, blocked.Code, blocked.Body.String())
}

func TestResolutionHandler_CRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser("OwnerPassw0rd!")
	reader := env.CreateUser("ReaderPassw0rd!")

	ownerToken := env.Login(owner.Email, "OwnerPassw0rd!").Token
	readerToken := env.Login(reader.Email, "ReaderPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/resolutions", map[string]any{
		"resolution_number": "BOR-2026-014",
		"effectivity":       "2026-01-01T00:00:00Z",
		"expiration":        "2029-01-01T00:00:00Z",
		"partner_agency":    "Provincial Agriculture Office",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var resolution models.Resolution
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &resolution)
	require.Equal(t, owner.ID, resolution.OwnerID)

	// Resolutions are visible to every authenticated user without review.
	visible := env.Request(http.MethodGet, "/api/resolutions/"+resolution.ID, nil, readerToken)
	require.Equal(t, http.StatusOK, visible.Code)

	// Only the owner or an admin may modify.
	denied := env.Request(http.MethodPut, "/api/resolutions/"+resolution.ID, map[string]any{
		"resolution_number": "BOR-2026-015",
		"effectivity":       "2026-01-01T00:00:00Z",
		"expiration":        "2029-01-01T00:00:00Z",
	}, readerToken)
	require.Equal(t, http.StatusForbidden, denied.Code)
}

func TestIntlPartnerHandler_CRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser("OwnerPassw0rd!")
	reader := env.CreateUser("ReaderPassw0rd!")
	collegeID := seededCollegeID(t, env)

	ownerToken := env.Login(owner.Email, "OwnerPassw0rd!").Token
	readerToken := env.Login(reader.Email, "ReaderPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/international-partners", map[string]any{
		"agency_partner":     "Kyoto Institute of Technology",
		"location":           "Kyoto, Japan",
		"activity_conducted": "Joint research planning workshop",
		"start_date":         "2026-03-10T00:00:00Z",
		"end_date":           "2026-03-14T00:00:00Z",
		"college_id":         collegeID,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var partner models.IntlPartner
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &partner)
	require.Equal(t, owner.ID, partner.OwnerID)

	// Partner records are visible to every authenticated user without review.
	visible := env.Request(http.MethodGet, "/api/international-partners/"+partner.ID, nil, readerToken)
	require.Equal(t, http.StatusOK, visible.Code)

	// Only the owner or an admin may modify.
	denied := env.Request(http.MethodPut, "/api/international-partners/"+partner.ID, map[string]any{
		"agency_partner":     "Kyoto Institute of Technology",
		"location":           "Kyoto, Japan",
		"activity_conducted": "Rewritten by someone else",
		"college_id":         collegeID,
	}, readerToken)
	require.Equal(t, http.StatusForbidden, denied.Code)

	// Archiving re-checks the owner's password.
	badPassword := env.Request(http.MethodPost, "/api/international-partners/"+partner.ID+"/archive", map[string]any{
		"password": "wrong-password",
	}, ownerToken)
	require.Equal(t, http.StatusForbidden, badPassword.Code)

	archived := env.Request(http.MethodPost, "/api/international-partners/"+partner.ID+"/archive", map[string]any{
		"password": "OwnerPassw0rd!",
	}, ownerToken)
	require.Equal(t, http.StatusOK, archived.Code, archived.Body.String())

	gone := env.Request(http.MethodGet, "/api/international-partners/"+partner.ID, nil, ownerToken)
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestAuditHandler_AdminOnlyTrail(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	regular := env.CreateUser("UserPassw0rd!")
	collegeID := seededCollegeID(t, env)

	userToken := env.Login(regular.Email, "UserPassw0rd!").Token
	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token

	created := env.Request(http.MethodPost, "/api/engagement", map[string]any{
		"agency_partner":     "Municipal Agriculture Office",
		"location":           "Aborlan",
		"activity_conducted": "Farmers Field School",
		"college_id":         collegeID,
	}, userToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var engagement models.Engagement
	testutil.DecodeInto(t, testutil.DecodeResponse(t, created).Data, &engagement)

	forbidden := env.Request(http.MethodGet, "/api/audit", nil, userToken)
	require.Equal(t, http.StatusForbidden, forbidden.Code)

	list := env.Request(http.MethodGet, "/api/audit?entity_kind=engagement", nil, adminToken)
	require.Equal(t, http.StatusOK, list.Code, list.Body.String())
	listPayload := testutil.DecodeResponse(t, list)
	var entries []models.AuditEntry
	testutil.DecodeInto(t, listPayload.Data, &entries)
	require.NotEmpty(t, entries)
	require.Equal(t, models.KindEngagement, entries[0].EntityKind)

	history := env.Request(http.MethodGet, "/api/audit/engagement/"+engagement.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, history.Code, history.Body.String())

	stats := env.Request(http.MethodGet, "/api/audit/statistics", nil, adminToken)
	require.Equal(t, http.StatusOK, stats.Code, stats.Body.String())
}

func TestDashboardHandler_Overviews(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	regular := env.CreateUser("UserPassw0rd!")

	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token
	userToken := env.Login(regular.Email, "UserPassw0rd!").Token

	adminView := env.Request(http.MethodGet, "/api/dashboard/admin", nil, adminToken)
	require.Equal(t, http.StatusOK, adminView.Code, adminView.Body.String())

	denied := env.Request(http.MethodGet, "/api/dashboard/admin", nil, userToken)
	require.Equal(t, http.StatusForbidden, denied.Code)

	me := env.Request(http.MethodGet, "/api/dashboard/me", nil, userToken)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
}

func TestReviewHandler_PendingQueue(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateAdmin("AdminPassw0rd!")
	owner := env.CreateUser("OwnerPassw0rd!")
	collegeID := seededCollegeID(t, env)

	ownerToken := env.Login(owner.Email, "OwnerPassw0rd!").Token
	adminToken := env.Login(admin.Email, "AdminPassw0rd!").Token

	parent := env.Request(http.MethodPost, "/api/tech-transfer", map[string]any{
		"name":        "Mushroom Spawn Production",
		"description": "Community mushroom production package",
		"category":    "agriculture",
		"purpose":     "livelihood",
		"college_id":  collegeID,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, parent.Code, parent.Body.String())
	var transfer models.TechTransfer
	testutil.DecodeInto(t, testutil.DecodeResponse(t, parent).Data, &transfer)

	created := env.Request(http.MethodPost, "/api/impact-assessment", map[string]any{
		"tech_transfer_id": transfer.ID,
		"beneficiary":      "Upland farming cooperatives",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	pending := env.Request(http.MethodGet, "/api/review/pending", nil, adminToken)
	require.Equal(t, http.StatusOK, pending.Code, pending.Body.String())

	counts := env.Request(http.MethodGet, "/api/review/pending/counts", nil, adminToken)
	require.Equal(t, http.StatusOK, counts.Code, counts.Body.String())
	countsPayload := testutil.DecodeResponse(t, counts)
	var byKind map[string]int64
	testutil.DecodeInto(t, countsPayload.Data, &byKind)
	require.Equal(t, int64(1), byKind["impact-assessment"])
}
