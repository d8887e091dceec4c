package main

import (
	"context"
	"flag"
	"log/syslog"
	"os"
	"os/signal"
	"time"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/creolew/Upload-Image-Jhipster/diskblob"
	"github.com/creolew/Upload-Image-Jhipster/persistent"
	"github.com/creolew/Upload-Image-Jhipster/transport/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"github.com/uptrace/bun"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func listenAndServe(
	ctx context.Context,
	bdb *buntdb.DB,
	db *bun.DB,
	blobs *diskblob.Store,
	debug bool,
) func() error {
	userStore := &persistent.UserStore{DB: db}
	extraStore := &persistent.UserExtraStore{DB: db}
	sessionStore := &persistent.SessionStore{Buntdb: bdb}
	sessionStore.CreateIndexes()

	uploadController := rest.UploadController{Blobs: blobs, Extras: extraStore}
	extraController := rest.UserExtraController{Store: extraStore}

	server := fiber.New()
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})

	allowOrigins := "https://upload-image.demo"
	if debug {
		allowOrigins += ", http://localhost:3000"
	}
	api.Use(cors.New(cors.Config{AllowOrigins: allowOrigins}))

	requestAuthorizer := rest.RequestAuthorizer(sessionStore, userStore)
	api.Get("/status", monitor.New())
	uploadController.InstallTo(requestAuthorizer, api)
	extraController.InstallTo(api)

	server.Mount("/api/", api)

	server.Static("/", "./www/", fiber.Static{
		Browse: false,
		Index:  "index.html",
	})

	server.Use(rest.NotFoundHandler)

	var addr string
	if debug {
		addr = "127.0.0.1:8080"
	} else {
		addr = ":8080"
	}
	go server.Listen(addr)

	return func() error {
		return server.Shutdown()
	}
}

func setupLogger(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "upload_backend")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func setupBlobStore() *diskblob.Store {
	blobs := &diskblob.Store{Root: os.Getenv("UPLOAD_DIR")}
	for _, slot := range []upload.Slot{upload.SlotFront, upload.SlotBack} {
		if err := blobs.EnsureDir(slot); err != nil {
			logrus.WithError(err).Fatalln("Could not initialize folder for upload!")
		}
	}
	return blobs
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	debug := os.Getenv("DEBUG") == "true"
	setupLogger(debug)
	logrus.Infoln("Starting backend.")

	pgDsn := os.Getenv("POSTGRES_DSN")
	if pgDsn == "" {
		logrus.Fatalln("Environment variable POSTGRES_DSN is not set!")
	}

	bdb, err := buntdb.Open("kv.db")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open buntdb.")
	}
	defer bdb.Close()

	logrus.Infoln("Opening database.")
	db := persistent.PgOpen(context.Background(), pgDsn)
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	defer db.Close()

	blobs := setupBlobStore()

	logrus.Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(context.Background(), bdb, db, blobs, debug)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	err = shutdown()
	if err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	logrus.Exit(0)
}
