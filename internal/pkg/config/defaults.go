package config

import "github.com/spf13/viper"

// envAliases maps config keys to the plain environment variable names used by
// existing deployments. AutomaticEnv additionally accepts the upper-snake form
// of every key (mail.destination -> MAIL_DESTINATION).
var envAliases = map[string][]string{
	"credential.mode":           {"APP_MODE"},
	"credential.local.username": {"EMAIL_USER"},
	"credential.local.password": {"EMAIL_PASS"},
	"mail.destination":          {"DESTINATION_EMAIL"},
	"app.server.http.port":      {"PORT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "contactrelay")
	v.SetDefault("app.server.http.address", "")
	v.SetDefault("app.server.http.port", 3001)
	v.SetDefault("app.server.http.read_timeout_seconds", 10)
	v.SetDefault("app.server.http.read_header_timeout_seconds", 5)
	v.SetDefault("app.server.http.write_timeout_seconds", 30)
	v.SetDefault("app.server.http.idle_timeout_seconds", 60)
	v.SetDefault("app.server.cors", "https://edward-codes.tez")
	v.SetDefault("app.server.body_limit_bytes", 100*1024)
	v.SetDefault("app.server.trust_proxy", false)
	v.SetDefault("app.maintenance.endpoints", "")

	v.SetDefault("app.ratelimit.enabled", true)
	v.SetDefault("app.ratelimit.driver", "memory")
	v.SetDefault("app.ratelimit.window_seconds", 15*60)
	v.SetDefault("app.ratelimit.max", 100)

	v.SetDefault("redis.url", "")

	v.SetDefault("idempotency.enabled", false)
	v.SetDefault("idempotency.lock_seconds", 60)
	v.SetDefault("idempotency.ttl_seconds", 24*60*60)

	v.SetDefault("credential.mode", "local")
	v.SetDefault("credential.local.username", "")
	v.SetDefault("credential.local.password", "")
	v.SetDefault("credential.ssm.region", "")
	v.SetDefault("credential.ssm.endpoint", "")
	v.SetDefault("credential.ssm.username_param", "/contactrelay/email_user")
	v.SetDefault("credential.ssm.password_param", "/contactrelay/email_pass")

	v.SetDefault("mail.driver", "smtp")
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.destination", "")
	v.SetDefault("mail.ses.region", "")
	v.SetDefault("mail.ses.endpoint", "")

	v.SetDefault("instrument.enabled", false)
	v.SetDefault("instrument.service_name", "contactrelay")
	v.SetDefault("instrument.service_version", "dev")
	v.SetDefault("instrument.env", "local")
	v.SetDefault("instrument.otlp_endpoint", "localhost:4317")
	v.SetDefault("instrument.otlp_secure", false)
	v.SetDefault("instrument.trace_sample_ratio", 1.0)
	v.SetDefault("instrument.metric_interval_seconds", 15)
	v.SetDefault("instrument.log_mask_fields", "password,email_pass,authorization,cookie,name,email,message,value")
}
