package logger

import (
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/hellopos/internal/util"
)

// Field es zap.Field; permite armar slices de campos sin importar zap.
type Field = zap.Field

// ---- HTTP ----

func RequestID(v string) zap.Field       { return zap.String("request_id", v) }
func Method(v string) zap.Field          { return zap.String("method", v) }
func Path(v string) zap.Field            { return zap.String("path", v) }
func Route(v string) zap.Field           { return zap.String("route", v) }
func Status(v int) zap.Field             { return zap.Int("status", v) }
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func Bytes(v int) zap.Field              { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field        { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field       { return zap.String("user_agent", v) }

// ---- Identidad / autorización ----

// Email sale enmascarado; los logs no guardan el email completo.
func Email(v string) zap.Field { return zap.String("email", util.MaskEmail(v)) }

func UserID(v int64) zap.Field  { return zap.Int64("user_id", v) }
func Role(v string) zap.Field   { return zap.String("role", v) }
func Reason(v string) zap.Field { return zap.String("reason", v) }
func Action(v string) zap.Field { return zap.String("action", v) }

// ---- Recursos ----

func StoreID(v int64) zap.Field    { return zap.Int64("store_id", v) }
func CategoryID(v int64) zap.Field { return zap.Int64("category_id", v) }
func ProductID(v int64) zap.Field  { return zap.Int64("product_id", v) }

// ---- Sistema ----

// Layer: controller, service, repository, middleware.
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Err(err error) zap.Field      { return zap.Error(err) }
func Count(v int) zap.Field        { return zap.Int("count", v) }
func Key(v string) zap.Field       { return zap.String("key", v) }

func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
