// Package config loads, caches and stores game rulesets.
//
// Rulesets live as JSON (.json) or YAML (.yaml, .yml) files in a config
// directory and are addressed by file name without extension. The built-in
// rulesets "simple" and "advanced" are always available; a file with the
// same name overrides them.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadConfig("advanced")
//	if errors.Is(err, config.ErrConfigNotFound) {
//		rules = manager.GetDefault()
//	}
//
//	infos, err := manager.ListConfigs()
//
//	// Written as configs/house.yaml
//	err = manager.SaveConfig("house.yaml", rules)
//
// Every ruleset is validated on load and save; validation failures wrap
// ErrInvalidConfig.
package config
