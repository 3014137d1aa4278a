package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"tuneslot/internal/auth"
	"tuneslot/internal/blog"
	"tuneslot/internal/booking"
	"tuneslot/internal/config"
	"tuneslot/internal/contact"
	"tuneslot/internal/email"
	"tuneslot/internal/instrument"
	"tuneslot/internal/lesson"
	"tuneslot/internal/newsletter"
	"tuneslot/internal/notification"
	"tuneslot/internal/payment"
	"tuneslot/internal/settings"
	"tuneslot/internal/store"
	"tuneslot/internal/sweeper"
	"tuneslot/internal/user"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	email      *email.Service
}

// Deps carries everything the router needs beyond the database.
type Deps struct {
	Config  *config.Config
	Email   *email.Service
	Sweeper *sweeper.Sweeper
}

func New(db *sqlx.DB, deps Deps) *Server {
	cfg := deps.Config
	emailService := deps.Email

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userRepo := user.NewRepository(db)
	lessonRepo := lesson.NewRepository(db)
	instrumentRepo := instrument.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	storeRepo := store.NewRepository(db)
	blogRepo := blog.NewRepository(db)
	newsletterRepo := newsletter.NewRepository(db)
	contactRepo := contact.NewRepository(db)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	lessonService := lesson.NewService(lessonRepo)
	bookingService := booking.NewService(bookingRepo, lessonRepo, userRepo, settingsRepo, notificationRepo, paymentRepo, emailService)
	storeService := store.NewService(storeRepo, paymentRepo, userRepo, emailService)
	newsletterService := newsletter.NewService(newsletterRepo, emailService)

	userHandler := user.NewHandler(userService)
	lessonHandler := lesson.NewHandler(lessonService)
	instrumentHandler := instrument.NewHandler(instrumentRepo)
	bookingHandler := booking.NewHandler(bookingService)
	settingsHandler := settings.NewHandler(settingsRepo)
	notificationHandler := notification.NewHandler(notificationRepo)
	paymentHandler := payment.NewHandler(paymentRepo)
	storeHandler := store.NewHandler(storeRepo, storeService)
	blogHandler := blog.NewHandler(blogRepo)
	newsletterHandler := newsletter.NewHandler(newsletterService)
	contactHandler := contact.NewHandler(contactRepo, emailService)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	authGroup := router.Group("/auth")
	authGroup.Use(RateLimitMiddleware(5, 10))
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/refresh", userHandler.Refresh)
	}

	public := router.Group("/")
	{
		public.GET("/lessons", lessonHandler.ListLessons)
		public.GET("/lessons/:lessonID", lessonHandler.GetLesson)
		public.GET("/lessons/:lessonID/availability", lessonHandler.GetAvailability)
		public.GET("/lessons/:lessonID/slots", lessonHandler.ListTimeSlots)
		public.GET("/instruments", instrumentHandler.ListInstruments)
		public.GET("/store/products", storeHandler.ListProducts)
		public.GET("/blog", blogHandler.ListPosts)
		public.GET("/blog/:slug", blogHandler.GetPost)
		public.POST("/newsletter/subscribe", RateLimitMiddleware(2, 5), newsletterHandler.Subscribe)
		public.GET("/newsletter/unsubscribe/:token", newsletterHandler.Unsubscribe)
		public.POST("/contact", RateLimitMiddleware(2, 5), contactHandler.SubmitEnquiry)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)

		protected.GET("/notifications", notificationHandler.ListMyNotifications)
		protected.POST("/notifications/:notificationID/read", notificationHandler.MarkRead)

		protected.GET("/payments", paymentHandler.ListMyPayments)

		protected.GET("/store/cart", storeHandler.GetCart)
		protected.POST("/store/cart", storeHandler.AddToCart)
		protected.DELETE("/store/cart/:productID", storeHandler.RemoveFromCart)
		protected.POST("/store/checkout", storeHandler.Checkout)
		protected.GET("/store/orders", storeHandler.ListMyOrders)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/lessons", lessonHandler.CreateLesson)
		admin.PUT("/lessons/:lessonID", lessonHandler.UpdateLesson)
		admin.POST("/lessons/:lessonID/slots", lessonHandler.CreateTimeSlot)
		admin.PUT("/slots/:slotID", lessonHandler.UpdateTimeSlot)
		admin.POST("/slots/:slotID/deactivate", lessonHandler.DeactivateTimeSlot)
		admin.DELETE("/slots/:slotID", lessonHandler.DeleteTimeSlot)

		admin.POST("/instruments", instrumentHandler.CreateInstrument)
		admin.POST("/instruments/:instrumentID/deactivate", instrumentHandler.DeactivateInstrument)

		admin.GET("/lessons/:lessonID/bookings", bookingHandler.ListBookingsByLesson)
		admin.GET("/bookings", bookingHandler.ListBookingsByDate)
		admin.POST("/bookings/:bookingID/confirm", bookingHandler.ConfirmBooking)
		admin.POST("/bookings/:bookingID/no-show", bookingHandler.MarkNoShow)

		admin.GET("/settings", settingsHandler.GetSettings)
		admin.PUT("/settings", settingsHandler.UpdateSettings)

		admin.PUT("/payments/:paymentID", paymentHandler.UpdatePaymentStatus)

		admin.POST("/store/products", storeHandler.CreateProduct)
		admin.DELETE("/store/products/:id", storeHandler.DeactivateProduct)

		admin.GET("/blog", blogHandler.ListAllPosts)
		admin.POST("/blog", blogHandler.CreatePost)
		admin.PUT("/blog/:id", blogHandler.UpdatePost)
		admin.DELETE("/blog/:id", blogHandler.DeletePost)

		admin.POST("/newsletter/broadcast", newsletterHandler.Broadcast)

		admin.GET("/enquiries", contactHandler.ListEnquiries)
		admin.POST("/enquiries/:id/respond", contactHandler.RespondToEnquiry)

		admin.POST("/sweep", RunSweep(deps.Sweeper))
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
