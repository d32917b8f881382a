package options

import "testing"

func TestStoreOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    StoreOptions
		wantErr bool
	}{
		{name: "memory", opts: StoreOptions{Backend: StoreBackendMemory}},
		{name: "boltdb with path", opts: StoreOptions{Backend: StoreBackendBoltDB, Path: "helix.db"}},
		{name: "boltdb without path", opts: StoreOptions{Backend: StoreBackendBoltDB}, wantErr: true},
		{name: "unknown backend", opts: StoreOptions{Backend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.opts.Validate()
			if (len(errs) != 0) != tt.wantErr {
				t.Errorf("Validate(%+v) = %v, wantErr %v", tt.opts, errs, tt.wantErr)
			}
		})
	}
}

func TestStoreOptionsDefaults(t *testing.T) {
	o := NewStoreOptions()
	if o.Backend != StoreBackendMemory {
		t.Errorf("Backend = %q, want %q", o.Backend, StoreBackendMemory)
	}
	if errs := o.Validate(); len(errs) != 0 {
		t.Errorf("defaults rejected: %v", errs)
	}
}

func TestModelOptionsValidate(t *testing.T) {
	o := NewModelOptions()
	if errs := o.Validate(); len(errs) != 0 {
		t.Fatalf("empty provider set rejected: %v", errs)
	}

	o.Providers["openrouter"] = &ProviderConfig{}
	if errs := o.Validate(); len(errs) == 0 {
		t.Error("provider without models accepted")
	}

	o.Providers["openrouter"] = &ProviderConfig{
		Models: []ModelDefinition{{Name: "unnamed"}},
	}
	if errs := o.Validate(); len(errs) == 0 {
		t.Error("model without id accepted")
	}

	o.Providers["openrouter"] = &ProviderConfig{
		Models: []ModelDefinition{{ID: "x-ai/grok-code-fast-1", Name: "Grok Code Fast"}},
	}
	if errs := o.Validate(); len(errs) != 0 {
		t.Errorf("valid provider rejected: %v", errs)
	}
}
