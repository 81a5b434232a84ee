package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DustinMarino133/cyberskill/core/course"
	testutil "github.com/DustinMarino133/cyberskill/tests"
)

func TestCourseAPI_list(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Course User", "crslistusr", "crslistusr@test.cd", "s3cret", nil, true)

	tests := []httpTest{
		{name: "missing jwt", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "catalog", token: getToken(t, usr), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/courses", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusOK {
				var courses []course.Course
				if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
					t.Fatalf("unmarshalling courses: %v", err)
				}
				if len(courses) != 5 {
					t.Errorf("len(courses) = %d, want 5", len(courses))
				}
			}
		})
	}
}

func TestCourseAPI_enroll(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Enroll User", "enrollusr", "enrollusr@test.cd", "s3cret", nil, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{
			name: "unknown course", path: "/v1/courses/quantum-basket-weaving/enroll",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "unknown course"}),
		},
		{
			name: "enroll", path: "/v1/courses/phishing-defense/enroll",
			wantCode: http.StatusCreated,
		},
		{
			name: "enrolling twice", path: "/v1/courses/phishing-defense/enroll",
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "already enrolled in this course"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusCreated {
				var enr course.Enrollment
				if err := json.Unmarshal(rec.Body.Bytes(), &enr); err != nil {
					t.Fatalf("unmarshalling Enrollment: %v", err)
				}
				if enr.UserID != usr.ID || enr.CourseID != "phishing-defense" {
					t.Errorf("Enrollment = %+v, want user %s on phishing-defense", enr, usr.ID)
				}
				if enr.Completed() {
					t.Error("fresh enrollment is already completed")
				}
			}
		})
	}

	// the enrollment list now carries it
	req, rec := newAuthRequest(http.MethodGet, "/v1/courses/enrolled", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("enrolled: code = %v, want %v", rec.Code, http.StatusOK)
	}
	var enrs []course.Enrollment
	if err := json.Unmarshal(rec.Body.Bytes(), &enrs); err != nil {
		t.Fatalf("unmarshalling enrollments: %v", err)
	}
	if len(enrs) != 1 || enrs[0].CourseID != "phishing-defense" {
		t.Errorf("enrollments = %+v, want a single phishing-defense entry", enrs)
	}
}

func TestCourseAPI_withdraw(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Quit User", "quitusr", "quitusr@test.cd", "s3cret", nil, true)
	token := getToken(t, usr)

	post := func(path string) *httptest.ResponseRecorder {
		req, rec := newAuthRequest(http.MethodPost, path, token)
		app.ServeHTTP(rec, req)
		return rec
	}

	if rec := post("/v1/courses/password-hygiene/enroll"); rec.Code != http.StatusCreated {
		t.Fatalf("enroll: code = %v; body %s", rec.Code, rec.Body.String())
	}
	if rec := post("/v1/courses/password-hygiene/withdraw"); rec.Code != http.StatusNoContent {
		t.Fatalf("withdraw: code = %v; body %s", rec.Code, rec.Body.String())
	}

	tt := httpTest{
		name: "withdrawing twice", wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, httpErr{Error: "not enrolled in this course"}),
	}
	rec := post("/v1/courses/password-hygiene/withdraw")
	checkCodeAndData(t, tt, rec)

	// withdrawing forgets the enrollment entirely; re-enrolling starts over
	if rec := post("/v1/courses/password-hygiene/enroll"); rec.Code != http.StatusCreated {
		t.Errorf("re-enroll: code = %v; body %s", rec.Code, rec.Body.String())
	}
}

func TestCourseAPI_complete(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Grad User", "gradusr", "gradusr@test.cd", "s3cret", nil, true)
	token := getToken(t, usr)

	post := func(path string) *httptest.ResponseRecorder {
		req, rec := newAuthRequest(http.MethodPost, path, token)
		app.ServeHTTP(rec, req)
		return rec
	}

	tt := httpTest{
		name: "completing before enrolling", wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, httpErr{Error: "not enrolled in this course"}),
	}
	checkCodeAndData(t, tt, post("/v1/courses/phishing-defense/complete"))

	if rec := post("/v1/courses/phishing-defense/enroll"); rec.Code != http.StatusCreated {
		t.Fatalf("enroll: code = %v; body %s", rec.Code, rec.Body.String())
	}

	rec := post("/v1/courses/phishing-defense/complete")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var enr course.Enrollment
	if err := json.Unmarshal(rec.Body.Bytes(), &enr); err != nil {
		t.Fatalf("unmarshalling Enrollment: %v", err)
	}
	if !enr.Completed() {
		t.Error("completed enrollment has no completion time")
	}

	// rewards landed: 120 coins on the wallet, 250 XP on the tracker
	wallet, err := shopSvc.Wallet(testCtx(), usr.ID)
	if err != nil {
		t.Fatalf("Wallet() failed: %v", err)
	}
	if wallet.Coins != 4850+120 {
		t.Errorf("Coins = %d, want %d", wallet.Coins, 4850+120)
	}
	req, prec := newAuthRequest(http.MethodGet, "/v1/progress", token)
	app.ServeHTTP(prec, req)
	var prog struct {
		XP int `json:"xp"`
	}
	if err := json.Unmarshal(prec.Body.Bytes(), &prog); err != nil {
		t.Fatalf("unmarshalling progress: %v", err)
	}
	if prog.XP != 250 {
		t.Errorf("XP = %d, want 250", prog.XP)
	}

	// completing again never double-pays
	tt = httpTest{
		name: "completing twice", wantCode: http.StatusConflict,
		wantData: marchallObj(t, httpErr{Error: "course already completed"}),
	}
	checkCodeAndData(t, tt, post("/v1/courses/phishing-defense/complete"))

	wallet, err = shopSvc.Wallet(testCtx(), usr.ID)
	if err != nil {
		t.Fatalf("Wallet() failed: %v", err)
	}
	if wallet.Coins != 4850+120 {
		t.Errorf("Coins = %d after re-complete, want %d", wallet.Coins, 4850+120)
	}
}
