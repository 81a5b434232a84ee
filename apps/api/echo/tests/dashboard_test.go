package tests

import (
	"net/http"
	"testing"

	"github.com/DustinMarino133/cyberskill/core/session"
	"github.com/DustinMarino133/cyberskill/core/user"
	testutil "github.com/DustinMarino133/cyberskill/tests"
)

func TestDashboardAPI(t *testing.T) {
	student := testutil.CreateUser(t, usrRepo, "Student", "studusr", "studusr@test.cd", "s3cret", []string{user.RoleStudent}, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teachusr", "teachusr@test.cd", "s3cret", []string{user.RoleTeacher}, true)
	corporate := testutil.CreateUser(t, usrRepo, "Corporate", "corpusr", "corpusr@test.cd", "s3cret", []string{user.RoleCorporate}, true)

	studentToken := loginToken(t, student)
	teacherToken := loginToken(t, teacher)
	corporateToken := loginToken(t, corporate)
	sessionlessToken := getToken(t, student)

	studentProfile := session.Profile{
		ID: "demo-student", Name: "Alex Chen", Title: "Security Apprentice", Role: user.RoleStudent,
		Level: 12, XP: 4280, Streak: 7,
		Badges: []string{"phishing-spotter", "password-pro", "firewall-rookie"},
	}
	teacherProfile := session.Profile{
		ID: "demo-teacher", Name: "Sarah Johnson", Title: "Lead Instructor", Role: user.RoleTeacher,
		ClassCount: 4, StudentCount: 112,
	}
	corporateProfile := session.Profile{
		ID: "demo-corporate", Name: "Marcus Reed", Title: "Security Awareness Manager", Role: user.RoleCorporate,
		Company: "Nexus Dynamics", TeamSize: 48, AvgRiskScore: 72,
	}

	errNotAuthenticated := marchallObj(t, httpErr{Error: "not authenticated"})
	errWrongPortal := marchallObj(t, httpErr{Error: "session role does not match this portal"})

	tests := []httpTest{
		{name: "missing jwt", path: "/v1/dashboard/student", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "token without session", path: "/v1/dashboard/student", token: sessionlessToken, wantCode: http.StatusUnauthorized, wantData: errNotAuthenticated},

		// a valid session for the wrong portal bounces, it never redirects
		{name: "student on teacher portal", path: "/v1/dashboard/teacher", token: studentToken, wantCode: http.StatusForbidden, wantData: errWrongPortal},
		{name: "student on corporate portal", path: "/v1/dashboard/corporate", token: studentToken, wantCode: http.StatusForbidden, wantData: errWrongPortal},
		{name: "teacher on student portal", path: "/v1/dashboard/student", token: teacherToken, wantCode: http.StatusForbidden, wantData: errWrongPortal},
		{name: "corporate on teacher portal", path: "/v1/dashboard/teacher", token: corporateToken, wantCode: http.StatusForbidden, wantData: errWrongPortal},

		{name: "student portal", path: "/v1/dashboard/student", token: studentToken, wantCode: http.StatusOK, wantData: marchallObj(t, studentProfile)},
		{name: "teacher portal", path: "/v1/dashboard/teacher", token: teacherToken, wantCode: http.StatusOK, wantData: marchallObj(t, teacherProfile)},
		{name: "corporate portal", path: "/v1/dashboard/corporate", token: corporateToken, wantCode: http.StatusOK, wantData: marchallObj(t, corporateProfile)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestProgressAPI(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Prog User", "progusr", "progusr@test.cd", "s3cret", nil, true)
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodGet, "/v1/progress", token)
	app.ServeHTTP(rec, req)

	tt := httpTest{
		name: "fresh progress", wantCode: http.StatusOK,
		wantData: marchallObj(t, map[string]interface{}{
			"user_id": usr.ID, "xp": 0, "level": 1, "streak": 0,
			"last_activity": "0001-01-01T00:00:00Z", "updated_at": "0001-01-01T00:00:00Z",
		}),
	}
	checkCodeAndData(t, tt, rec)
}
