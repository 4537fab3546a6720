// Package logger expone un *zap.Logger singleton con scoping por contexto.
//
// El logger base se inicializa una vez con Init (cmd/service, cmd/posctl). Cada
// request recibe un logger hijo con request_id, method y path que el middleware de
// logging inyecta con ToContext; services y controllers lo recuperan con From(ctx).
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Login"))
//	log.Info("login ok", logger.Email(email))
//
// Env "prod" produce JSON, "test" descarta todo, cualquier otro valor usa consola.
package logger
