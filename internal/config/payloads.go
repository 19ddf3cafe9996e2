package config

import "sigs.k8s.io/kind/pkg/apis/config/v1alpha4"

// KindTopology returns the fixed two-node cluster layout: one control-plane
// node and one worker that hosts the simulated GPU workloads.
func KindTopology(name string) *v1alpha4.Cluster {
	return &v1alpha4.Cluster{
		TypeMeta: v1alpha4.TypeMeta{
			Kind:       "Cluster",
			APIVersion: "kind.x-k8s.io/v1alpha4",
		},
		Name: name,
		Nodes: []v1alpha4.Node{
			{Role: v1alpha4.ControlPlaneRole},
			{Role: v1alpha4.WorkerRole},
		},
	}
}

// GPUNodeLabels is the fixed label set applied to worker nodes to simulate
// GPU hardware, driver, container runtime, and DCGM presence. The health
// monitors schedule onto nodes carrying these labels.
func GPUNodeLabels() map[string]string {
	return map[string]string{
		"nvidia.com/gpu.present":                  "true",
		"nvidia.com/gpu.deploy.driver":            "true",
		"nvidia.com/gpu.deploy.container-toolkit": "true",
		"nvidia.com/gpu.deploy.dcgm":              "true",
	}
}

// DefaultWorkloadGroups lists the four workload groups the readiness gate
// waits on, in the order they are checked.
func DefaultWorkloadGroups() []WorkloadGroup {
	return []WorkloadGroup{
		{Name: "platform connectors", Namespace: AppNamespace, Selector: "app=platform-connector"},
		{Name: "fault quarantine", Namespace: AppNamespace, Selector: "app=fault-quarantine-module"},
		{Name: "datastore", Namespace: AppNamespace, Selector: "app.kubernetes.io/name=mongodb"},
		{Name: "health monitors", Namespace: AppNamespace, Selector: "app=health-monitor"},
	}
}
