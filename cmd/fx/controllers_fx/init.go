package controllers_fx

import (
	"go.uber.org/fx"

	"tourplan/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewLocationsController),
	fx.Provide(controllers.NewRecommendationController),
	fx.Provide(controllers.NewPOIsController))
