/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/comcast/thermalmon/buildinfo"
	"github.com/comcast/thermalmon/chassis"
	"github.com/comcast/thermalmon/config"
	"github.com/comcast/thermalmon/exporter"
	"github.com/comcast/thermalmon/http/handlers"
	"github.com/comcast/thermalmon/logger"
	"github.com/comcast/thermalmon/middleware/logging"
	"github.com/comcast/thermalmon/middleware/muxprom"
	"github.com/comcast/thermalmon/platform"
	"github.com/comcast/thermalmon/statedb"
	"github.com/comcast/thermalmon/sysfs"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	app = "thermalmon"
)

var (
	a                  = kingpin.New(app, "switch thermal policy exporter")
	logLevel           = a.Flag("log.level", "log level verbosity").PlaceHolder("[debug|info|warn|error]").Default("info").Envar("LOG_LEVEL").String()
	logMethod          = a.Flag("log.method", "alternative method for logging in addition to stdout").PlaceHolder("[file|vector]").Default("").Envar("LOG_METHOD").String()
	logFilePath        = a.Flag("log.file-path", "directory path where log files are written if log-method is file").Default("/var/log/thermalmon").Envar("LOG_FILE_PATH").String()
	logFileMaxSize     = a.Flag("log.file-max-size", "max file size in megabytes if log-method is file").Default("256").Envar("LOG_FILE_MAX_SIZE").String()
	logFileMaxBackups  = a.Flag("log.file-max-backups", "max file backups before they are rotated if log-method is file").Default("1").Envar("LOG_FILE_MAX_BACKUPS").String()
	logFileMaxAge      = a.Flag("log.file-max-age", "max file age in days before they are rotated if log-method is file").Default("1").Envar("LOG_FILE_MAX_AGE").String()
	vectorEndpoint     = a.Flag("vector.endpoint", "vector endpoint to send structured json logs to").Default("http://0.0.0.0:4444").Envar("VECTOR_ENDPOINT").String()
	insecureSkipVerify = a.Flag("insecure-skip-verify", "Skip TLS verification of the vector endpoint").Default("false").Envar("INSECURE_SKIP_VERIFY").Bool()
	exporterPort       = a.Flag("port", "exporter port").Default("10024").Envar("EXPORTER_PORT").String()
	sysfsRoot          = a.Flag("sysfs.root", "prefix prepended to every sysfs path").Default("").Envar("SYSFS_ROOT").String()
	platformTable      = a.Flag("platform.table", "yaml platform table, the built in es2227-54ts table is used when empty").Default("").Envar("PLATFORM_TABLE").String()
	stateDBAddr        = a.Flag("statedb.addr", "state database unix socket path or host:port, empty disables state database sensors").Default(statedb.DefaultSocket).Envar("STATEDB_ADDR").String()
	stateDBNumber      = a.Flag("statedb.db", "state database number").Default(strconv.Itoa(statedb.DefaultDB)).Envar("STATEDB_DB").Int()
	stateDBTimeout     = a.Flag("statedb.timeout", "state database read timeout").Default("2s").Envar("STATEDB_TIMEOUT").Duration()
	oneshot            = a.Flag("oneshot", "run a single poll, print it as json and exit").Default("false").Bool()
	version            = a.Flag("version", "print build information and exit").Default("false").Bool()

	log *zap.Logger
)

var wg = sync.WaitGroup{}

func main() {
	ctx := context.Background()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}

	a.HelpFlag.Short('h')

	_, err = a.Parse(os.Args[1:])
	if err != nil {
		panic(fmt.Errorf("error parsing argument flags - %s", err.Error()))
	}

	if *version {
		buildinfo.Print(os.Stdout)
		return
	}

	// validate logFilePath exists and is a directory
	if *logMethod == logger.FILE {
		fd, err := os.Stat(*logFilePath)
		if os.IsNotExist(err) {
			panic(err)
		}
		if !fd.IsDir() {
			panic(fmt.Errorf("%s is not a directory", *logFilePath))
		}
	}

	logfileMaxSize, err := strconv.Atoi(*logFileMaxSize)
	if err != nil {
		panic(fmt.Errorf("error converting arg --log.file-max-size to int - %s", err.Error()))
	}

	logfileMaxBackups, err := strconv.Atoi(*logFileMaxBackups)
	if err != nil {
		panic(fmt.Errorf("error converting arg --log.file-max-backups to int - %s", err.Error()))
	}

	logfileMaxAge, err := strconv.Atoi(*logFileMaxAge)
	if err != nil {
		panic(fmt.Errorf("error converting arg --log.file-max-age to int - %s", err.Error()))
	}

	config.NewConfig(&config.Config{
		SysfsRoot:      *sysfsRoot,
		PlatformTable:  *platformTable,
		StateDBAddr:    *stateDBAddr,
		StateDBNumber:  *stateDBNumber,
		StateDBTimeout: *stateDBTimeout,
		SSLVerify:      *insecureSkipVerify,
	})
	cfg := config.GetConfig()

	// init logger config
	logConfig := logger.LoggerConfig{
		LogLevel:  *logLevel,
		LogMethod: *logMethod,
		LogFile: logger.LogFile{
			Path:       *logFilePath,
			MaxSize:    logfileMaxSize,
			MaxBackups: logfileMaxBackups,
			MaxAge:     logfileMaxAge,
		},
		VectorEndpoint: *vectorEndpoint,
	}

	err = logger.Initialize(app, hostname, logConfig)
	if err != nil {
		panic(fmt.Errorf("error initializing logger - log_method=%s vector_endpoint=%s log_file_path=%s log_file_max_size=%d log_file_max_backups=%d log_file_max_age=%d - err=%s",
			*logMethod, *vectorEndpoint, *logFilePath, logfileMaxSize, logfileMaxBackups, logfileMaxAge, err.Error()))
	}

	log = zap.L()
	defer logger.Flush()

	if *logMethod == logger.VECTOR {
		log.Info("successfully initialized logger", zap.String("log_method", *logMethod),
			zap.String("vector_endpoint", *vectorEndpoint))
	} else if *logMethod == logger.FILE {
		log.Info("successfully initialized logger", zap.String("log_method", *logMethod),
			zap.String("log_file_path", *logFilePath),
			zap.Int("log_file_max_size", logfileMaxSize),
			zap.Int("log_file_max_backups", logfileMaxBackups),
			zap.Int("log_file_max_age", logfileMaxAge))
	}

	var table *platform.Table
	if cfg.PlatformTable != "" {
		table, err = platform.Load(cfg.PlatformTable)
	} else {
		table, err = platform.DefaultTable()
	}
	if err != nil {
		log.Error("failed loading platform table", zap.Error(err), zap.String("platform_table", cfg.PlatformTable))
		return
	}

	var db statedb.Client
	if cfg.StateDBAddr != "" {
		rdb := statedb.NewRedisClient(statedb.Parameters{
			Addr:    cfg.StateDBAddr,
			DB:      cfg.StateDBNumber,
			Timeout: cfg.StateDBTimeout,
		})
		defer rdb.Close()
		db = rdb
	} else {
		log.Warn("state database disabled, asic and transceiver sensors report absent")
	}

	c := chassis.NewChassis(ctx, table, sysfs.NewReader(nil, cfg.SysfsRoot), db)
	buildinfo.SetPlatform(c.Name(), string(c.Direction()))

	exp := exporter.NewExporter(c, c.Name())

	if *oneshot {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(exp.Poll()); err != nil {
			log.Error("failed encoding poll", zap.Error(err))
		}
		return
	}

	prometheus.MustRegister(exp)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /info", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(buildinfo.Info)
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /status", handlers.StatusHandler(exp))

	tmplIndex := template.Must(template.New("index").Parse(indexTmpl))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		snap, ok := exp.Snapshot()
		err := tmplIndex.Execute(w, newIndexAppData(hostname, snap, ok))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /verbosity", logger.Verbosity)
	mux.HandleFunc("PUT /verbosity", logger.SetVerbosity)

	instrumentation := muxprom.NewDefaultInstrumentation()
	wrappedmux := logging.LoggingHandler(instrumentation.Middleware(mux))

	srv := &http.Server{
		Addr:    ":" + *exporterPort,
		Handler: wrappedmux,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	listener, err := net.Listen("tcp4", ":"+*exporterPort)
	if err != nil {
		log.Error("starting "+app+" service failed", zap.Error(err))
		signals <- syscall.SIGTERM
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error("http server received an error", zap.Error(err))
				signals <- syscall.SIGTERM
			}
		}()

		log.Info("started "+app+" service", zap.String("port", *exporterPort))
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-signals
		log.Info(s.String() + " signal caught, stopping app")
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("http server shutdown failed", zap.Error(err))
		}
	}()

	wg.Wait()
}
