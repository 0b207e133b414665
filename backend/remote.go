/*
 * remote.go, part of govqe.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rmera/govqe/circuit"
)

//DefaultTokenEnv is the environment variable read for the remote backend token.
const DefaultTokenEnv = "GOVQE_REMOTE_TOKEN"

//RemoteConfig are the settings for a remote quantum device.
type RemoteConfig struct {
	BaseURL      string //the jobs API root, jobs are posted to BaseURL/jobs
	Device       string
	TokenEnv     string //defaults to DefaultTokenEnv
	EnvFile      string //defaults to ".env", a missing file is not an error
	PollInterval time.Duration
	Timeout      time.Duration //per HTTP request
}

//Remote submits circuits as OpenQASM 3 jobs to a remote device over HTTP,
//and polls for their counts. It fullfills Sampler.
type Remote struct {
	cfg    RemoteConfig
	token  string
	client *http.Client
}

var credentialLoads atomic.Int64

//CredentialLoads returns the number of times remote credentials have been loaded in
//this process.
func CredentialLoads() int64 {
	return credentialLoads.Load()
}

//NewRemote loads the credentials (from the environment, after reading the
//env file, if present) and returns a Remote. No request is made.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.BaseURL == "" {
		return nil, Error{UnknownBackend + ": remote backend without URL", []string{"NewRemote"}, true}
	}
	if cfg.TokenEnv == "" {
		cfg.TokenEnv = DefaultTokenEnv
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	credentialLoads.Add(1)
	if err := godotenv.Load(cfg.EnvFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("Could not read %s: %v", cfg.EnvFile, err)
	}
	token := os.Getenv(cfg.TokenEnv)
	if token == "" {
		return nil, Error{fmt.Sprintf("%s: %s not set", NoCredentials, cfg.TokenEnv), []string{"NewRemote"}, true}
	}
	return &Remote{cfg: cfg, token: token, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

//Name returns the device name.
func (R *Remote) Name() string { return R.cfg.Device }

type jobRequest struct {
	ClientID string `json:"client_id"`
	Device   string `json:"device"`
	QASM     string `json:"qasm"`
	Shots    int    `json:"shots"`
}

type jobStatus struct {
	ID     string         `json:"id"`
	Status string         `json:"status"` //queued, running, completed, failed, cancelled
	Counts map[string]int `json:"counts"`
	Error  string         `json:"error,omitempty"`
}

func (R *Remote) do(ctx context.Context, method, url string, body []byte, out interface{}) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return Error{err.Error(), []string{"http.NewRequestWithContext", "do"}, true}
	}
	req.Header.Set("Authorization", "Bearer "+R.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := R.client.Do(req)
	if err != nil {
		return Error{err.Error(), []string{"http.Client.Do", "do"}, true}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Error{fmt.Sprintf("%s: %s %s: %s", BadResponse, method, resp.Status, strings.TrimSpace(string(msg))), []string{"do"}, true}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Error{BadResponse + ": " + err.Error(), []string{"json.Decode", "do"}, true}
	}
	return nil
}

//Submit posts the bound circuit c, with measurements on all qubits, and returns the job id.
func (R *Remote) Submit(ctx context.Context, c *circuit.Circuit, shots int) (string, error) {
	qasm, err := c.QASM(true)
	if err != nil {
		return "", Error{err.Error(), []string{"circuit.QASM", "Submit"}, true}
	}
	body, err := json.Marshal(jobRequest{ClientID: uuid.New().String(), Device: R.cfg.Device, QASM: qasm, Shots: shots})
	if err != nil {
		return "", Error{err.Error(), []string{"json.Marshal", "Submit"}, true}
	}
	var st jobStatus
	if err := R.do(ctx, http.MethodPost, strings.TrimSuffix(R.cfg.BaseURL, "/")+"/jobs", body, &st); err != nil {
		return "", errDecorate(err, "Submit")
	}
	if st.ID == "" {
		return "", Error{BadResponse + ": no job id", []string{"Submit"}, true}
	}
	log.Info("Job submitted", "device", R.cfg.Device, "job", st.ID, "shots", shots)
	return st.ID, nil
}

//Wait polls the job until it completes, fails or ctx is done, and returns its counts.
func (R *Remote) Wait(ctx context.Context, id string) (map[uint64]int, error) {
	url := strings.TrimSuffix(R.cfg.BaseURL, "/") + "/jobs/" + id
	ticker := time.NewTicker(R.cfg.PollInterval)
	defer ticker.Stop()
	for {
		var st jobStatus
		if err := R.do(ctx, http.MethodGet, url, nil, &st); err != nil {
			return nil, errDecorate(err, "Wait")
		}
		switch st.Status {
		case "completed", "done":
			return parseCounts(st.Counts)
		case "failed", "cancelled", "error":
			return nil, Error{fmt.Sprintf("%s: job %s %s: %s", JobFailed, id, st.Status, st.Error), []string{"Wait"}, true}
		}
		log.Debug("Waiting for job", "job", id, "status", st.Status)
		select {
		case <-ctx.Done():
			return nil, Error{Cancelled + ": " + ctx.Err().Error(), []string{"Wait"}, true}
		case <-ticker.C:
		}
	}
}

//Sample submits c and waits for the counts.
func (R *Remote) Sample(ctx context.Context, c *circuit.Circuit, shots int) (map[uint64]int, error) {
	if shots <= 0 {
		return nil, Error{BadShots, []string{"Remote.Sample"}, true}
	}
	id, err := R.Submit(ctx, c, shots)
	if err != nil {
		return nil, errDecorate(err, "Remote.Sample")
	}
	counts, err := R.Wait(ctx, id)
	if err != nil {
		return nil, errDecorate(err, "Remote.Sample")
	}
	return counts, nil
}

//parseCounts reads bitstring keys, qubit 0 rightmost. Hexadecimal keys ("0x5") are also accepted.
func parseCounts(raw map[string]int) (map[uint64]int, error) {
	counts := make(map[uint64]int, len(raw))
	for k, n := range raw {
		var v uint64
		var err error
		if strings.HasPrefix(k, "0x") {
			v, err = strconv.ParseUint(k[2:], 16, 64)
		} else {
			v, err = strconv.ParseUint(strings.ReplaceAll(k, " ", ""), 2, 64)
		}
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: count key %q", BadResponse, k), []string{"parseCounts"}, true}
		}
		counts[v] += n
	}
	return counts, nil
}
