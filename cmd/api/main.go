package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/campuscore/campus-backend/internal/config"
	"github.com/campuscore/campus-backend/internal/logging"
	"github.com/campuscore/campus-backend/internal/repository/local"
	miniorepo "github.com/campuscore/campus-backend/internal/repository/minio"
	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/repository/postgres"
	"github.com/campuscore/campus-backend/internal/service"
	transporthttp "github.com/campuscore/campus-backend/internal/transport/http"
	"github.com/campuscore/campus-backend/internal/transport/mail"
	"github.com/campuscore/campus-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		if writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr); err == nil {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
			log.Printf("mirroring logs to logstash at %s", cfg.LogstashTCPAddr)
		} else {
			log.Printf("logstash disabled: %v", err)
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	adminRepo := postgres.NewAdminRepo(db)
	studentRepo := postgres.NewStudentRepo(db)
	facultyRepo := postgres.NewFacultyRepo(db)
	academicsRepo := postgres.NewAcademicsRepo(db)
	assessmentRepo := postgres.NewAssessmentRepo(db)
	attendanceRepo := postgres.NewAttendanceRepo(db)
	materialRepo := postgres.NewMaterialRepo(db)
	quizRepo := postgres.NewQuizRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret)

	var mailer mail.Mailer = mail.ConsoleMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	e := transporthttp.NewRouter(cfg.AllowOrigins)

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("minio: %v", err)
		}
		minioStorage := miniorepo.NewStorage(client, cfg.MinIOBucketSubmissions, cfg.MinIOPublicURL)
		if err := minioStorage.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("minio: %v", err)
		}
		storage = minioStorage
	} else {
		localStorage, err := local.NewStorage(cfg.UploadDir)
		if err != nil {
			log.Fatalf("uploads: %v", err)
		}
		storage = localStorage
		e.Static("/files", cfg.UploadDir)
	}

	authService := service.NewAuthService(adminRepo, jwtManager, cfg.AdminSessionTTL)
	adminService := service.NewAdminService(adminRepo)
	accountsService := service.NewAccountsService(studentRepo, facultyRepo)
	academicsService := service.NewAcademicsService(academicsRepo)
	mfaService := service.NewMFAService(studentRepo, facultyRepo, mailer, jwtManager, service.MFAServiceConfig{
		OTPTTL:      cfg.OTPTTL,
		Debounce:    cfg.OTPDebounce,
		MaxAttempts: cfg.OTPMaxAttempts,
		SessionTTL:  cfg.SessionTTL,
	})
	facultyService := service.NewFacultyService(facultyRepo, studentRepo, academicsRepo, assessmentRepo, attendanceRepo, materialRepo, quizRepo)
	studentService := service.NewStudentService(studentRepo, academicsRepo, assessmentRepo, attendanceRepo, materialRepo, quizRepo, storage)

	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterAdmins(e, jwtManager, adminService)
	transporthttp.RegisterAccounts(e, jwtManager, accountsService)
	transporthttp.RegisterAcademics(e, jwtManager, academicsService)
	transporthttp.RegisterMFA(e, mfaService)
	transporthttp.RegisterFaculty(e, jwtManager, facultyService)
	transporthttp.RegisterStudent(e, jwtManager, studentService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
