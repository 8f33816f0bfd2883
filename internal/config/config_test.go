package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmccool/aws-transfer-project/internal/secretfetcher"
)

func static(v string) secretfetcher.From {
	return func(context.Context) (string, error) { return v, nil }
}

func failing(err error) secretfetcher.From {
	return func(context.Context) (string, error) { return "", err }
}

func TestLoad(t *testing.T) {
	cases := map[string]struct {
		env        map[string]string
		username   secretfetcher.Fetcher
		password   secretfetcher.Fetcher
		expected   *Config
		expectedEr string
	}{
		"variant A": {
			env: map[string]string{
				RoleARNEnv:             "arn:aws:iam::104168354287:role/aws-video-transfer-role",
				HomeDirectoryTargetEnv: "/ovc-video-test",
			},
			username: static("ovc-camera"),
			password: static("testpass1234"),
			expected: &Config{
				Username:            "ovc-camera",
				Password:            "testpass1234",
				RoleARN:             "arn:aws:iam::104168354287:role/aws-video-transfer-role",
				HomeDirectoryTarget: "/ovc-video-test",
				AllowedServerIDs:    []string{},
				AllowedSourceCIDRs:  []string{},
				ListenAddr:          DefaultListenAddr,
			},
		},
		"allow-lists and listen address": {
			env: map[string]string{
				RoleARNEnv:             "arn:aws:iam::654654585293:role/SftpAccessRole",
				HomeDirectoryTargetEnv: "/sftp-server-data-bucket-654654585293-us-east-2",
				AllowedServerIDsEnv:    "s-1, ,s-2",
				AllowedSourceCIDRsEnv:  "1.2.3.4, 10.0.0.0/8,2001:db8::1",
				AccessPolicyFileEnv:    "/etc/policy.rego",
				ListenAddrEnv:          ":9000",
			},
			username: static("ovc-camera"),
			password: static("testpass1234"),
			expected: &Config{
				Username:            "ovc-camera",
				Password:            "testpass1234",
				RoleARN:             "arn:aws:iam::654654585293:role/SftpAccessRole",
				HomeDirectoryTarget: "/sftp-server-data-bucket-654654585293-us-east-2",
				AllowedServerIDs:    []string{"s-1", "s-2"},
				AllowedSourceCIDRs:  []string{"1.2.3.4/32", "10.0.0.0/8", "2001:db8::1/128"},
				AccessPolicyFile:    "/etc/policy.rego",
				ListenAddr:          ":9000",
			},
		},
		"invalid source address": {
			env: map[string]string{
				RoleARNEnv:             "arn:aws:iam::1:role/r",
				HomeDirectoryTargetEnv: "/t",
				AllowedSourceCIDRsEnv:  "not-an-ip",
			},
			username:   static("ovc-camera"),
			password:   static("testpass1234"),
			expectedEr: `invalid source address "not-an-ip" in SFTP_ALLOWED_SOURCE_CIDRS`,
		},
		"missing role and relative target": {
			env: map[string]string{
				HomeDirectoryTargetEnv: "ovc-video-test",
			},
			username:   static("ovc-camera"),
			password:   static("testpass1234"),
			expectedEr: "SFTP_ROLE_ARN must be an IAM role ARN\nSFTP_HOME_DIRECTORY_TARGET must be an absolute path",
		},
		"password fetch failure": {
			env:        map[string]string{},
			username:   static("ovc-camera"),
			password:   failing(errors.New("boom")),
			expectedEr: "failed to resolve password: boom",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{
				RoleARNEnv, HomeDirectoryTargetEnv, AllowedServerIDsEnv,
				AllowedSourceCIDRsEnv, AccessPolicyFileEnv, ListenAddrEnv,
			} {
				t.Setenv(key, tc.env[key])
			}

			cfg, err := Load(context.TODO(), tc.username, tc.password)

			if tc.expectedEr != "" {
				assert.EqualError(t, err, tc.expectedEr)
				assert.Nil(t, cfg)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	err := (&Config{}).Validate()

	assert.EqualError(
		t,
		err,
		"SFTP_USERNAME is required\n"+
			"SFTP_PASSWORD or SFTP_PASSWORD_SECRET_ARN is required\n"+
			"SFTP_ROLE_ARN must be an IAM role ARN\n"+
			"SFTP_HOME_DIRECTORY_TARGET must be an absolute path",
	)
}
