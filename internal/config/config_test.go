package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"DeliveryDashboard/internal/config"
)

var _ = Describe("Load", func() {
	var envKeys = []string{
		"LISTEN_ADDR", "ADMIN_PASSWORD", "ADMIN_SESSION_TIMEOUT", "ADMIN_TOKEN_SECRET",
		"ADMIN_CAN_ADD", "ADMIN_CAN_EDIT", "ADMIN_CAN_DELETE", "ADMIN_LOGIN_LIMIT_PER_MIN",
		"STORAGE_DRIVER", "STORAGE_DSN", "STORAGE_RESTAURANTS_KEY", "STORAGE_ADMIN_KEY",
		"STORAGE_SETTINGS_KEY", "RESET_ON_CORRUPT", "SEARCH_CACHE_TTL", "METRICS_ENABLED",
		"METRICS_TOKEN", "SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	}

	var saved map[string]string

	BeforeEach(func() {
		saved = make(map[string]string, len(envKeys))
		for _, k := range envKeys {
			saved[k] = os.Getenv(k)
			Expect(os.Unsetenv(k)).To(Succeed())
		}
	})

	AfterEach(func() {
		for k, v := range saved {
			if v == "" {
				Expect(os.Unsetenv(k)).To(Succeed())
			} else {
				Expect(os.Setenv(k, v)).To(Succeed())
			}
		}
	})

	It("returns defaults when no env vars are set", func() {
		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.ListenAddr).To(Equal(":8080"))
		Expect(cfg.Admin.Password).To(Equal("admin123"))
		Expect(cfg.Admin.SessionTimeout).To(BeZero())
		Expect(cfg.Admin.CanAdd).To(BeTrue())
		Expect(cfg.Admin.CanEdit).To(BeTrue())
		Expect(cfg.Admin.CanDelete).To(BeTrue())
		Expect(cfg.Admin.LoginLimitPerMin).To(Equal(5))
		Expect(cfg.Storage.Driver).To(Equal("sqlite"))
		Expect(cfg.Storage.DSN).To(Equal("file:dashboard.db"))
		Expect(cfg.Storage.RestaurantsKey).To(Equal("restaurantDashboardData"))
		Expect(cfg.Storage.AdminKey).To(Equal("restaurantDashboardAdminMode"))
		Expect(cfg.Storage.SettingsKey).To(Equal("restaurantDashboardSettings"))
		Expect(cfg.ResetOnCorrupt).To(BeFalse())
		Expect(cfg.SearchCacheTTL).To(Equal(5 * time.Minute))
		Expect(cfg.MetricsEnabled).To(BeTrue())
		Expect(cfg.MetricsToken).To(BeEmpty())
		Expect(cfg.ShutdownTimeout).To(Equal(10 * time.Second))
		Expect(cfg.LogLevel).To(Equal("info"))
	})

	It("reads prefixed admin and storage values", func() {
		Expect(os.Setenv("ADMIN_PASSWORD", "s3cret")).To(Succeed())
		Expect(os.Setenv("ADMIN_SESSION_TIMEOUT", "30m")).To(Succeed())
		Expect(os.Setenv("ADMIN_CAN_DELETE", "false")).To(Succeed())
		Expect(os.Setenv("STORAGE_DRIVER", "postgres")).To(Succeed())
		Expect(os.Setenv("STORAGE_DSN", "postgres://u:p@db:5432/dash")).To(Succeed())
		Expect(os.Setenv("STORAGE_RESTAURANTS_KEY", "restaurants")).To(Succeed())

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Admin.Password).To(Equal("s3cret"))
		Expect(cfg.Admin.SessionTimeout).To(Equal(30 * time.Minute))
		Expect(cfg.Admin.CanDelete).To(BeFalse())
		Expect(cfg.Storage.Driver).To(Equal("postgres"))
		Expect(cfg.Storage.DSN).To(Equal("postgres://u:p@db:5432/dash"))
		Expect(cfg.Storage.RestaurantsKey).To(Equal("restaurants"))
	})

	It("returns an error for an invalid duration", func() {
		Expect(os.Setenv("SEARCH_CACHE_TTL", "soon")).To(Succeed())

		_, err := config.Load()
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown storage driver", func() {
		Expect(os.Setenv("STORAGE_DRIVER", "mongo")).To(Succeed())

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("STORAGE_DRIVER")))
	})

	It("rejects a non-positive login limit", func() {
		Expect(os.Setenv("ADMIN_LOGIN_LIMIT_PER_MIN", "0")).To(Succeed())

		_, err := config.Load()
		Expect(err).To(HaveOccurred())
	})
})
