package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

// trackRoutes holds the paths of one track. The off-campus paths keep
// the historical "of" prefixes the frontend already calls.
type trackRoutes struct {
	track         models.Track
	companies     string
	addCompany    string
	deleteCompany string
	saveProgress  string
	blog          string
	progress      string
	passed        string
	branchCount   string
	roster        string
}

var routeTable = []trackRoutes{
	{
		track:         models.OnCampus,
		companies:     "/api/companies",
		addCompany:    "/api/addCompany",
		deleteCompany: "/api/deleteCompany/{name}",
		saveProgress:  "/saveStudentProgress",
		blog:          "/api/blogs/{company}",
		progress:      "/api/progress/{company}",
		passed:        "/api/passedStudents/{company}",
		branchCount:   "/api/branchPassedCount",
		roster:        "/api/roster",
	},
	{
		track:         models.OffCampus,
		companies:     "/api/ofcompanies",
		addCompany:    "/api/ofaddCompany",
		deleteCompany: "/api/ofdeleteCompany/{name}",
		saveProgress:  "/saveOffStudentProgress",
		blog:          "/api/ofblogs/{company}",
		progress:      "/api/ofprogress/{company}",
		passed:        "/api/ofpassedStudents/{company}",
		branchCount:   "/api/ofbranchPassedCount",
		roster:        "/api/ofroster",
	},
}

func NewRouter(service *app.Service) http.Handler {
	mux := http.NewServeMux()
	gate := sessionGate{service: service}

	admin := gate.require(models.RoleAdmin)
	member := gate.require(models.RoleStudent, models.RoleAdmin)
	anyone := gate.require()

	authHandler := NewAuthHandler(service)
	companyHandler := NewCompanyHandler(service)
	progressHandler := NewProgressHandler(service)
	eligibilityHandler := NewEligibilityHandler(service)
	resumeHandler := NewResumeHandler(service)

	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", anyone(authHandler.Logout))
	mux.HandleFunc("GET /api/session", anyone(authHandler.Session))

	for _, rt := range routeTable {
		mux.HandleFunc("GET "+rt.companies, companyHandler.List(rt.track))
		mux.HandleFunc("POST "+rt.addCompany, admin(companyHandler.Add(rt.track)))
		mux.HandleFunc("DELETE "+rt.deleteCompany, admin(companyHandler.Delete(rt.track)))

		mux.HandleFunc("POST "+rt.saveProgress, member(progressHandler.Save(rt.track)))
		mux.HandleFunc("GET "+rt.blog, progressHandler.Blog(rt.track))
		mux.HandleFunc("GET "+rt.progress, admin(progressHandler.List(rt.track)))

		mux.HandleFunc("GET "+rt.passed, eligibilityHandler.Passed(rt.track))
		mux.HandleFunc("GET "+rt.branchCount, eligibilityHandler.BranchCount(rt.track))
		mux.HandleFunc("GET "+rt.roster, member(eligibilityHandler.Roster(rt.track)))
	}

	mux.HandleFunc("POST /api/resume/upload/{reg}", member(resumeHandler.Upload))
	mux.HandleFunc("PUT /api/resume/reupload/{reg}", member(resumeHandler.Upload))
	mux.HandleFunc("GET /api/resume/{reg}", member(resumeHandler.Get))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to the placement tracker API"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return Instrument(mux)
}
