package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
    "strings"  // strings splits comma separated lists
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env            string   // application environment (e.g. "dev", "prod")
    Port           string   // HTTP port to listen on
    DBURL          string   // MongoDB connection string
    DBName         string   // database name
    JWTSecret      string   // secret used to sign JWTs
    TokenTTLDays   int      // session token time-to-live in days
    BcryptCost     int      // bcrypt cost for password hashing
    AllowedOrigins []string // substrings a request Origin must contain to pass CORS
    UploadDir      string   // directory for uploaded product images
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Values that have a
// sensible default fall back to it when the variable is unset.
func Load() Config {
    return Config{
        Env:            getenv("APP_ENV", "dev"),
        Port:           getenv("PORT", "4000"),
        DBURL:          must("DB_URL"),     // mongodb:// or mongodb+srv:// URI
        DBName:         getenv("DB_NAME", "volley"),
        JWTSecret:      must("JWT_SECRET"), // secret used for signing JWTs
        TokenTTLDays:   getenvInt("TOKEN_TTL_DAYS", 7),
        BcryptCost:     getenvInt("BCRYPT_COST", 10),
        AllowedOrigins: parseList(getenv("ALLOWED_ORIGINS", "rechilab.com,localhost")),
        UploadDir:      getenv("UPLOAD_DIR", "uploads"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func getenvInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, v)
    }
    return n
}

func parseList(s string) []string {
    out := []string{}
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
