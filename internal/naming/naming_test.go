package naming

import "testing"

func TestEndpointPath(t *testing.T) {
	tests := []struct {
		opID string
		want string
	}{
		{"GetCitiesByRegion", "cities-by-region"},
		{"GetNeighborhoodsByCity", "neighborhoods-by-city"},
		{"GetUsersByRegion", "users-by-region"},
		{"SearchMovies", "search-movies"},
	}
	for _, tt := range tests {
		if got := EndpointPath(tt.opID); got != tt.want {
			t.Errorf("EndpointPath(%q) = %q, want %q", tt.opID, got, tt.want)
		}
	}
}

func TestSplitCamel(t *testing.T) {
	got := SplitCamel("HTTPServerPort")
	want := []string{"HTTP", "Server", "Port"}
	if len(got) != len(want) {
		t.Fatalf("SplitCamel = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCaseHelpers(t *testing.T) {
	if got := LowerFirst("GetUser"); got != "getUser" {
		t.Errorf("LowerFirst = %q", got)
	}
	if got := UpperFirst("user"); got != "User" {
		t.Errorf("UpperFirst = %q", got)
	}
	if got := PluralPath("Location"); got != "locations" {
		t.Errorf("PluralPath = %q", got)
	}
	if got := VarName("Movie"); got != "movie" {
		t.Errorf("VarName = %q", got)
	}
}
