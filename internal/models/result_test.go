package models

import "testing"

func TestSubmitRequestText(t *testing.T) {
	cases := []struct {
		name string
		req  SubmitRequest
		want string
	}{
		{"job_post only", SubmitRequest{JobPost: "Go engineer"}, "Go engineer"},
		{"user_input only", SubmitRequest{UserInput: "SRE"}, "SRE"},
		{"both prefers job_post", SubmitRequest{JobPost: "Go engineer", UserInput: "SRE"}, "Go engineer"},
		{"blank job_post falls back", SubmitRequest{JobPost: "  \n\t", UserInput: "SRE"}, "SRE"},
		{"both blank", SubmitRequest{JobPost: " ", UserInput: ""}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.Text(); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}
