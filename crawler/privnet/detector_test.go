package privnet_test

import (
	"testing"

	"unisearch/crawler/privnet"
)

func TestIPv4Blocks(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    bool
	}{
		{
			description: "loopback address",
			input:       "127.0.0.1",
			expected:    true,
		},
		{
			description: "private address (10.x.x.x)",
			input:       "10.0.0.128",
			expected:    true,
		},
		{
			description: "private address (172.x.x.x)",
			input:       "172.16.10.10",
			expected:    true,
		},
		{
			description: "private address (192.168.x.x)",
			input:       "192.168.0.127",
			expected:    true,
		},
		{
			description: "link-local address",
			input:       "169.254.169.254",
			expected:    true,
		},
	}

	detector, err := privnet.NewDetector()
	if err != nil {
		t.Fatal("detector initialization failed: ", err)
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			isPrivate, err := detector.IsPrivate(testCase.input)
			if err != nil {
				t.Error("unexpected error: ", err)
			}

			if isPrivate != testCase.expected {
				t.Errorf(
					"expected %q to be %v, got %v",
					testCase.input, testCase.expected, isPrivate,
				)
			}
		})
	}
}

func TestCustomCIDRs(t *testing.T) {
	detector, err := privnet.NewDetectorFromCIDRs("8.8.8.8/16")
	if err != nil {
		t.Fatal("detector initialization failed: ", err)
	}

	isPrivate, err := detector.IsPrivate("8.8.8.8")
	if err != nil {
		t.Error("unexpected error: ", err)
	}

	if !isPrivate {
		t.Errorf("expected %q to be private under the custom block", "8.8.8.8")
	}
}
