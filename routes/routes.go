package routes

import (
	"github.com/crestline-dev/realty_marketing_system/backend/controllers"
	"github.com/crestline-dev/realty_marketing_system/backend/middleware"
	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, redisClient *redis.Client, inv *services.InventoryService, leadSvc *services.LeadService) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser()).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser()).Methods("POST")

	// Public site routes
	router.HandleFunc("/projects", controllers.GetAllProjects(redisClient)).Methods("GET")
	router.HandleFunc("/projects/{id}", controllers.GetProjectByID()).Methods("GET")
	router.HandleFunc("/projects/{id}/apartments", controllers.GetProjectApartments(inv)).Methods("GET")
	router.HandleFunc("/team", controllers.GetTeam()).Methods("GET")
	router.HandleFunc("/milestones", controllers.GetMilestones()).Methods("GET")
	router.HandleFunc("/stats", controllers.GetStats(redisClient)).Methods("GET")

	// Lead-capture funnel
	router.HandleFunc("/contact", controllers.SubmitEnquiry(leadSvc)).Methods("POST")
	router.HandleFunc("/brochure", controllers.DownloadBrochure(leadSvc)).Methods("POST")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	// Project routes
	authenticated.HandleFunc("/projects", controllers.CreateProject(redisClient)).Methods("POST")
	authenticated.HandleFunc("/projects/{id}", controllers.UpdateProject(redisClient)).Methods("PUT")
	authenticated.HandleFunc("/projects/{id}", controllers.DeleteProject(redisClient)).Methods("DELETE")

	// Apartment inventory routes
	authenticated.HandleFunc("/apartments", controllers.CreateApartment(inv, redisClient)).Methods("POST")
	authenticated.HandleFunc("/apartments/{id}", controllers.GetApartmentByID(inv)).Methods("GET")
	authenticated.HandleFunc("/apartments/{id}", controllers.UpdateApartment(inv, redisClient)).Methods("PUT")
	authenticated.HandleFunc("/apartments/{id}", controllers.DeleteApartment(inv, redisClient)).Methods("DELETE")
	authenticated.HandleFunc("/apartments/{id}/book", controllers.BookApartmentUnits(inv, redisClient)).Methods("POST")
	authenticated.HandleFunc("/apartments/{id}/release", controllers.ReleaseApartmentUnits(inv, redisClient)).Methods("POST")

	// Lead management routes
	authenticated.HandleFunc("/leads", controllers.GetAllLeads(leadSvc)).Methods("GET")
	authenticated.HandleFunc("/leads/export", controllers.ExportLeads(leadSvc)).Methods("GET")
	authenticated.HandleFunc("/leads/follow-ups", controllers.GetFollowUpDueLeads(leadSvc)).Methods("GET")
	authenticated.HandleFunc("/leads/{id}", controllers.GetLeadByID(leadSvc)).Methods("GET")
	authenticated.HandleFunc("/leads/{id}", controllers.DeleteLead(leadSvc)).Methods("DELETE")
	authenticated.HandleFunc("/leads/{id}/status", controllers.UpdateLeadStatus(leadSvc)).Methods("PUT")
	authenticated.HandleFunc("/leads/{id}/follow-up", controllers.ScheduleLeadFollowUp(leadSvc)).Methods("PUT")
	authenticated.HandleFunc("/leads/{id}/notes", controllers.AddLeadNote(leadSvc)).Methods("POST")
	authenticated.HandleFunc("/leads/{id}/contacts", controllers.AddLeadContact(leadSvc)).Methods("POST")

	// Site content routes
	authenticated.HandleFunc("/team", controllers.CreateTeamMember()).Methods("POST")
	authenticated.HandleFunc("/team/{id}", controllers.UpdateTeamMember()).Methods("PUT")
	authenticated.HandleFunc("/team/{id}", controllers.DeleteTeamMember()).Methods("DELETE")
	authenticated.HandleFunc("/milestones", controllers.CreateMilestone()).Methods("POST")
	authenticated.HandleFunc("/milestones/{id}", controllers.UpdateMilestone()).Methods("PUT")
	authenticated.HandleFunc("/milestones/{id}", controllers.DeleteMilestone()).Methods("DELETE")
}
